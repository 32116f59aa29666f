package models

import "time"

// CourseStatus ist der Bearbeitungsstand eines Kurses
type CourseStatus string

const (
	CourseNotStarted CourseStatus = "not-started"
	CourseInProgress CourseStatus = "in-progress"
	CourseCompleted  CourseStatus = "completed"
)

// Valid prüft, ob der Status einer der bekannten Werte ist
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseNotStarted, CourseInProgress, CourseCompleted:
		return true
	}
	return false
}

// StatusFilter filtert die Kursliste; "all" lässt alles durch
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter akzeptiert "", "all" oder einen Kursstatus
func ParseStatusFilter(v string) (StatusFilter, bool) {
	if v == "" || v == string(FilterAll) {
		return FilterAll, true
	}
	if CourseStatus(v).Valid() {
		return StatusFilter(v), true
	}
	return "", false
}

type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonArticle  LessonType = "article"
	LessonExercise LessonType = "exercise"
	LessonQuiz     LessonType = "quiz"
)

type AssignmentType string

const (
	AssignmentProject      AssignmentType = "project"
	AssignmentQuiz         AssignmentType = "quiz"
	AssignmentEssay        AssignmentType = "essay"
	AssignmentExercise     AssignmentType = "exercise"
	AssignmentPresentation AssignmentType = "presentation"
)

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentOverdue   AssignmentStatus = "overdue"
)

// Valid prüft den Aufgabenstatus
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentCompleted, AssignmentOverdue:
		return true
	}
	return false
}

type ContactPlatform string

const (
	PlatformLinkedIn ContactPlatform = "linkedin"
	PlatformTwitter  ContactPlatform = "twitter"
	PlatformYouTube  ContactPlatform = "youtube"
	PlatformGitHub   ContactPlatform = "github"
	PlatformOther    ContactPlatform = "other"
)

// Kataloge für die Auswahllisten beim Anlegen eines Kurses
var (
	KnownPlatforms = []string{
		"Coursera", "Udemy", "edX", "Khan Academy", "Pluralsight",
		"YouTube", "LinkedIn Learning", "Skillshare", "Custom", "Other",
	}
	KnownCategories = []string{
		"Programming", "Data Science", "Design", "Business", "Marketing",
		"Languages", "Mathematics", "Science", "Art", "Music", "Other",
	}
)

// Course repräsentiert einen belegten Kurs.
// Der Fortschritt wird nie gespeichert, sondern aus den Lektionen abgeleitet.
type Course struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Platform         string       `json:"platform"`
	Category         string       `json:"category"`
	TotalHours       float64      `json:"total_hours"`
	CompletedHours   float64      `json:"completed_hours"`
	TotalLessons     int          `json:"total_lessons"`
	CompletedLessons int          `json:"completed_lessons"`
	StartDate        time.Time    `json:"start_date"`
	DueDate          *time.Time   `json:"due_date,omitempty"`
	Status           CourseStatus `json:"status"`
}

// FileAttachment ist eine angehängte Datei (nur Anzeige)
type FileAttachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Lesson ist eine zeitlich bemessene Lerneinheit eines Kurses
type Lesson struct {
	ID                string           `json:"id"`
	CourseID          string           `json:"course_id"`
	Title             string           `json:"title"`
	Summary           string           `json:"summary"`
	Duration          int              `json:"duration_minutes"`
	CompletedDuration int              `json:"completed_duration_minutes"`
	SourceLink        string           `json:"source_link,omitempty"`
	Completed         bool             `json:"completed"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
	Type              LessonType       `json:"type"`
	Files             []FileAttachment `json:"files"`
}

// Assignment ist eine Aufgabe mit Abgabetermin
type Assignment struct {
	ID          string           `json:"id"`
	CourseID    string           `json:"course_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        AssignmentType   `json:"type"`
	Status      AssignmentStatus `json:"status"`
	DueDate     time.Time        `json:"due_date"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`
	LessonID    string           `json:"lesson_id,omitempty"`
	Files       []FileAttachment `json:"files"`
}

type Certificate struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Name      string    `json:"name"`
	Issuer    string    `json:"issuer"`
	IssueDate time.Time `json:"issue_date"`
	URL       string    `json:"url,omitempty"`
	FileURL   string    `json:"file_url,omitempty"`
}

type Project struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	URL           string    `json:"url,omitempty"`
	Technologies  []string  `json:"technologies"`
	CompletedDate time.Time `json:"completed_date"`
}

// ProfessionalContact ist ein Eintrag im beruflichen Netzwerk (max. MaxContacts pro Kurs)
type ProfessionalContact struct {
	ID         string          `json:"id"`
	CourseID   string          `json:"course_id"`
	Name       string          `json:"name"`
	Platform   ContactPlatform `json:"platform"`
	ProfileURL string          `json:"profile_url"`
	Field      string          `json:"field"`
}

// MaxContacts begrenzt das Netzwerk pro Kurs
const MaxContacts = 5
