package progress

import (
	"math"

	"lerntracker/internal/models"
)

// DetailStats sind die Kennzahlen der Kursdetailansicht
type DetailStats struct {
	TotalMinutes         int `json:"total_minutes"`
	StudiedHours         int `json:"studied_hours"`
	CompletedLessons     int `json:"completed_lessons"`
	TotalLessons         int `json:"total_lessons"`
	PendingAssignments   int `json:"pending_assignments"`
	CompletedAssignments int `json:"completed_assignments"`
	ProgressPercentage   int `json:"progress_percentage"`
}

func CourseDetail(lessons []models.Lesson, assignments []models.Assignment) DetailStats {
	s := DetailStats{TotalLessons: len(lessons)}
	for _, l := range lessons {
		s.TotalMinutes += l.CompletedDuration
		if l.Completed {
			s.CompletedLessons++
		}
	}
	for _, a := range assignments {
		switch a.Status {
		case models.AssignmentPending:
			s.PendingAssignments++
		case models.AssignmentCompleted:
			s.CompletedAssignments++
		}
	}
	s.StudiedHours = int(math.Round(float64(s.TotalMinutes) / 60))
	s.ProgressPercentage = DeriveProgress(s.CompletedLessons, s.TotalLessons)
	return s
}
