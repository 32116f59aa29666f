package progress

import (
	"math"

	"lerntracker/internal/models"
)

// Dashboard fasst die Kursliste zusammen
type Dashboard struct {
	TotalCourses        int     `json:"total_courses"`
	CompletedCourses    int     `json:"completed_courses"`
	InProgressCourses   int     `json:"in_progress_courses"`
	TotalHoursCompleted float64 `json:"total_hours_completed"`
	AverageProgress     int     `json:"average_progress"`
}

// Summarize wird bei jedem Lesen neu berechnet, es gibt keinen Cache
func Summarize(courses []models.Course) Dashboard {
	d := Dashboard{TotalCourses: len(courses)}
	sum := 0
	for _, c := range courses {
		switch c.Status {
		case models.CourseCompleted:
			d.CompletedCourses++
		case models.CourseInProgress:
			d.InProgressCourses++
		}
		d.TotalHoursCompleted += c.CompletedHours
		sum += DeriveProgress(c.CompletedLessons, c.TotalLessons)
	}
	if d.TotalCourses > 0 {
		d.AverageProgress = int(math.Round(float64(sum) / float64(d.TotalCourses)))
	}
	return d
}
