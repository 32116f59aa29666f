package progress

import (
	"strings"

	"lerntracker/internal/models"
)

// Filter liefert die Kurse, deren Titel, Plattform oder Kategorie die Suche
// enthalten (ohne Groß-/Kleinschreibung) und deren Status zum Filter passt.
// Die Reihenfolge bleibt erhalten, die Eingabe wird nicht verändert.
func Filter(courses []models.Course, query string, status models.StatusFilter) []models.Course {
	q := strings.ToLower(query)
	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if matchesQuery(c, q) && matchesStatus(c, status) {
			out = append(out, c)
		}
	}
	return out
}

// Search ist Filter ohne Statuseinschränkung
func Search(courses []models.Course, query string) []models.Course {
	return Filter(courses, query, models.FilterAll)
}

// FilterByStatus ist Filter ohne Suchbegriff
func FilterByStatus(courses []models.Course, status models.StatusFilter) []models.Course {
	return Filter(courses, "", status)
}

func matchesQuery(c models.Course, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Platform), q) ||
		strings.Contains(strings.ToLower(c.Category), q)
}

func matchesStatus(c models.Course, status models.StatusFilter) bool {
	return status == "" || status == models.FilterAll || models.CourseStatus(status) == c.Status
}
