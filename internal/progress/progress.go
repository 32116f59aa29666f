// Package progress enthält die abgeleiteten Kennzahlen des Trackers:
// Fortschritt, Dashboard, Suche/Filter und Dringlichkeit von Aufgaben.
// Alle Funktionen sind rein und verändern ihre Eingaben nicht.
package progress

import (
	"math"

	"lerntracker/internal/models"
)

// Tier ist die Anzeige-Klasse eines Werts
type Tier string

const (
	TierSuccess    Tier = "success"
	TierWarning    Tier = "warning"
	TierDanger     Tier = "danger"
	TierNeutral    Tier = "neutral"
	TierNotStarted Tier = "not-started"
)

// DeriveProgress liefert round(100*completed/total), 0 bei total <= 0
func DeriveProgress(completed, total int) int {
	return percent(float64(completed), float64(total))
}

// LessonPercentage liefert den Anteil der bereits angesehenen Minuten
func LessonPercentage(l models.Lesson) int {
	return percent(float64(l.CompletedDuration), float64(l.Duration))
}

func percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	p := int(math.Round(100 * part / whole))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// CourseView ist ein Kurs mit abgeleiteten Anzeigewerten
type CourseView struct {
	models.Course
	Progress     int  `json:"progress"`
	ProgressTier Tier `json:"progress_tier"`
	StatusTier   Tier `json:"status_tier"`
}

// ViewCourse berechnet die Anzeigewerte eines Kurses
func ViewCourse(c models.Course) CourseView {
	p := DeriveProgress(c.CompletedLessons, c.TotalLessons)
	return CourseView{
		Course:       c,
		Progress:     p,
		ProgressTier: progressTier(p),
		StatusTier:   statusTier(c.Status),
	}
}

// ViewCourses behält die Reihenfolge bei
func ViewCourses(courses []models.Course) []CourseView {
	views := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, ViewCourse(c))
	}
	return views
}

func progressTier(p int) Tier {
	switch {
	case p == 100:
		return TierSuccess
	case p > 0:
		return TierWarning
	default:
		return TierNotStarted
	}
}

func statusTier(s models.CourseStatus) Tier {
	switch s {
	case models.CourseCompleted:
		return TierSuccess
	case models.CourseInProgress:
		return TierWarning
	case models.CourseNotStarted:
		return TierNotStarted
	default:
		return TierNeutral
	}
}

// LessonView ist eine Lektion mit ihrem Fortschritt in Prozent
type LessonView struct {
	models.Lesson
	ProgressPercentage int `json:"progress_percentage"`
}

func ViewLessons(lessons []models.Lesson) []LessonView {
	views := make([]LessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, LessonView{Lesson: l, ProgressPercentage: LessonPercentage(l)})
	}
	return views
}
