package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FormValue nimmt Formularfelder als String oder Zahl entgegen.
// Die Auswertung (und der Rückfall auf 0) passiert beim Anlegen der Entität.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// CourseInput sind die Felder des Formulars "Kurs hinzufügen"
type CourseInput struct {
	Title        string       `json:"title" validate:"notblank"`
	Description  string       `json:"description"`
	Platform     string       `json:"platform" validate:"notblank"`
	Category     string       `json:"category" validate:"notblank"`
	TotalHours   FormValue    `json:"total_hours"`
	TotalLessons FormValue    `json:"total_lessons"`
	StartDate    string       `json:"start_date" validate:"notblank"`
	DueDate      string       `json:"due_date"`
	Status       CourseStatus `json:"status" validate:"omitempty,oneof=not-started in-progress completed"`
}

// ProgressInput ändert den Stand eines bestehenden Kurses
type ProgressInput struct {
	CompletedLessons *int         `json:"completed_lessons" validate:"omitempty,min=0"`
	CompletedHours   *float64     `json:"completed_hours" validate:"omitempty,min=0"`
	Status           CourseStatus `json:"status" validate:"omitempty,oneof=not-started in-progress completed"`
}

type LessonInput struct {
	Title      string     `json:"title" validate:"notblank"`
	Summary    string     `json:"summary" validate:"notblank"`
	Duration   FormValue  `json:"duration" validate:"notblank"`
	SourceLink string     `json:"source_link" validate:"omitempty,url"`
	Type       LessonType `json:"type" validate:"omitempty,oneof=video article exercise quiz"`
}

type AssignmentInput struct {
	Title       string         `json:"title" validate:"notblank"`
	Description string         `json:"description" validate:"notblank"`
	Type        AssignmentType `json:"type" validate:"omitempty,oneof=project quiz essay exercise presentation"`
	DueDate     string         `json:"due_date" validate:"notblank"`
	LessonID    string         `json:"lesson_id"`
}

type CertificateInput struct {
	Name      string `json:"name" validate:"notblank"`
	Issuer    string `json:"issuer" validate:"notblank"`
	IssueDate string `json:"issue_date" validate:"notblank"`
	URL       string `json:"url" validate:"omitempty,url"`
	FileURL   string `json:"file_url"`
}

type ProjectInput struct {
	Title         string `json:"title" validate:"notblank"`
	Description   string `json:"description" validate:"notblank"`
	URL           string `json:"url" validate:"omitempty,url"`
	Technologies  string `json:"technologies"` // kommagetrennt
	CompletedDate string `json:"completed_date" validate:"notblank"`
}

type ContactInput struct {
	Name       string          `json:"name" validate:"notblank"`
	Platform   ContactPlatform `json:"platform" validate:"required,oneof=linkedin twitter youtube github other"`
	ProfileURL string          `json:"profile_url" validate:"required,url"`
	Field      string          `json:"field" validate:"notblank"`
}
