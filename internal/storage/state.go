package storage

import "lerntracker/internal/models"

// Portfolio ist der Lernnachweis eines Kurses
type Portfolio struct {
	Certificates []models.Certificate         `json:"certificates"`
	Projects     []models.Project             `json:"projects"`
	Contacts     []models.ProfessionalContact `json:"contacts"`
}

// State ist der gesamte Zustand des Trackers.
// Übergänge erzeugen neue Slices statt bestehende zu verändern, daher
// kann ein Snapshot gefahrlos weitergereicht werden.
type State struct {
	Courses     []models.Course                `json:"courses"`
	Lessons     map[string][]models.Lesson     `json:"lessons"`
	Assignments map[string][]models.Assignment `json:"assignments"`
	Portfolios  map[string]Portfolio           `json:"portfolios"`
}

// NewState liefert einen leeren Zustand
func NewState() State {
	return State{
		Courses:     []models.Course{},
		Lessons:     map[string][]models.Lesson{},
		Assignments: map[string][]models.Assignment{},
		Portfolios:  map[string]Portfolio{},
	}
}

// clone kopiert Liste und Maps; die Slices pro Kurs werden geteilt,
// weil kein Übergang sie an Ort und Stelle ändert
func (s State) clone() State {
	c := State{
		Courses:     append([]models.Course(nil), s.Courses...),
		Lessons:     make(map[string][]models.Lesson, len(s.Lessons)),
		Assignments: make(map[string][]models.Assignment, len(s.Assignments)),
		Portfolios:  make(map[string]Portfolio, len(s.Portfolios)),
	}
	for k, v := range s.Lessons {
		c.Lessons[k] = v
	}
	for k, v := range s.Assignments {
		c.Assignments[k] = v
	}
	for k, v := range s.Portfolios {
		c.Portfolios[k] = v
	}
	return c
}

// deepCopy kopiert zusätzlich alle Slices, für Leser außerhalb des Stores
func (s State) deepCopy() State {
	c := s.clone()
	for k, v := range c.Lessons {
		c.Lessons[k] = append([]models.Lesson(nil), v...)
	}
	for k, v := range c.Assignments {
		c.Assignments[k] = append([]models.Assignment(nil), v...)
	}
	for k, p := range c.Portfolios {
		c.Portfolios[k] = Portfolio{
			Certificates: append([]models.Certificate(nil), p.Certificates...),
			Projects:     append([]models.Project(nil), p.Projects...),
			Contacts:     append([]models.ProfessionalContact(nil), p.Contacts...),
		}
	}
	return c
}

func (s State) courseIndex(id string) int {
	for i, c := range s.Courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Course sucht einen Kurs per ID
func (s State) Course(id string) (models.Course, bool) {
	if i := s.courseIndex(id); i >= 0 {
		return s.Courses[i], true
	}
	return models.Course{}, false
}

func (s State) lessonExists(courseID, lessonID string) bool {
	for _, l := range s.Lessons[courseID] {
		if l.ID == lessonID {
			return true
		}
	}
	return false
}
