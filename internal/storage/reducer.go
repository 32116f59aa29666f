package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"lerntracker/internal/models"
)

// Action ist ein Ereignis, das den Zustand verändert
type Action interface {
	Name() string
}

type (
	AddCourse struct {
		Input models.CourseInput
	}
	UpdateCourseProgress struct {
		CourseID string
		Input    models.ProgressInput
	}
	DeleteCourse struct {
		CourseID string
	}
	AddLesson struct {
		CourseID string
		Input    models.LessonInput
	}
	CompleteLesson struct {
		CourseID string
		LessonID string
	}
	AddAssignment struct {
		CourseID string
		Input    models.AssignmentInput
	}
	SetAssignmentStatus struct {
		CourseID     string
		AssignmentID string
		Status       models.AssignmentStatus
	}
	AddCertificate struct {
		CourseID string
		Input    models.CertificateInput
	}
	AddProject struct {
		CourseID string
		Input    models.ProjectInput
	}
	AddContact struct {
		CourseID string
		Input    models.ContactInput
	}
	// Replace ersetzt den gesamten Zustand (Demo-Daten)
	Replace struct {
		State State
	}
)

func (AddCourse) Name() string            { return "add_course" }
func (UpdateCourseProgress) Name() string { return "update_course_progress" }
func (DeleteCourse) Name() string         { return "delete_course" }
func (AddLesson) Name() string            { return "add_lesson" }
func (CompleteLesson) Name() string       { return "complete_lesson" }
func (AddAssignment) Name() string        { return "add_assignment" }
func (SetAssignmentStatus) Name() string  { return "set_assignment_status" }
func (AddCertificate) Name() string       { return "add_certificate" }
func (AddProject) Name() string           { return "add_project" }
func (AddContact) Name() string           { return "add_contact" }
func (Replace) Name() string              { return "replace" }

// Env liefert dem Reducer alles, was nicht aus dem Zustand kommt
type Env struct {
	Now          time.Time
	NewID        func() string
	Location     *time.Location
	ContactLimit int
}

// Reduce wendet eine Aktion auf den Zustand an und liefert den neuen Zustand
// sowie die betroffene Entität. Bei einem Fehler bleibt s unverändert gültig.
func Reduce(s State, a Action, e Env) (State, any, error) {
	if e.Location == nil {
		e.Location = time.Local
	}
	if e.ContactLimit <= 0 {
		e.ContactLimit = models.MaxContacts
	}
	if e.NewID == nil {
		e.NewID = uuid.NewString
	}

	switch a := a.(type) {
	case AddCourse:
		return addCourse(s, a, e)
	case UpdateCourseProgress:
		return updateCourseProgress(s, a)
	case DeleteCourse:
		return deleteCourse(s, a)
	case AddLesson:
		return addLesson(s, a, e)
	case CompleteLesson:
		return completeLesson(s, a, e)
	case AddAssignment:
		return addAssignment(s, a, e)
	case SetAssignmentStatus:
		return setAssignmentStatus(s, a, e)
	case AddCertificate:
		return addCertificate(s, a, e)
	case AddProject:
		return addProject(s, a, e)
	case AddContact:
		return addContact(s, a, e)
	case Replace:
		return replace(a.State), nil, nil
	default:
		return s, nil, fmt.Errorf("unbekannte Aktion %T", a)
	}
}

// Kurse

func addCourse(s State, a AddCourse, e Env) (State, any, error) {
	in := a.Input
	if err := checkInput(in); err != nil {
		return s, nil, err
	}
	start, err := parseDate("start_date", in.StartDate, e.Location)
	if err != nil {
		return s, nil, err
	}
	var due *time.Time
	if strings.TrimSpace(in.DueDate) != "" {
		d, err := parseDate("due_date", in.DueDate, e.Location)
		if err != nil {
			return s, nil, err
		}
		due = &d
	}
	status := in.Status
	if status == "" {
		status = models.CourseNotStarted
	}

	c := models.Course{
		ID:           e.NewID(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Platform:     strings.TrimSpace(in.Platform),
		Category:     strings.TrimSpace(in.Category),
		TotalHours:   parseHours(in.TotalHours),
		TotalLessons: parseCount(in.TotalLessons),
		StartDate:    start,
		DueDate:      due,
		Status:       status,
	}

	next := s.clone()
	next.Courses = append(next.Courses, c)
	return next, c, nil
}

func updateCourseProgress(s State, a UpdateCourseProgress) (State, any, error) {
	i := s.courseIndex(a.CourseID)
	if i < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	if err := checkInput(a.Input); err != nil {
		return s, nil, err
	}

	c := s.Courses[i]
	if v := a.Input.CompletedLessons; v != nil {
		if *v > c.TotalLessons {
			return s, nil, invalid("completed_lessons", "darf total_lessons ("+strconv.Itoa(c.TotalLessons)+") nicht übersteigen")
		}
		c.CompletedLessons = *v
	}
	if v := a.Input.CompletedHours; v != nil {
		if *v > c.TotalHours {
			return s, nil, invalid("completed_hours", "darf total_hours nicht übersteigen")
		}
		c.CompletedHours = *v
	}
	if a.Input.Status != "" {
		c.Status = a.Input.Status
	}

	next := s.clone()
	next.Courses[i] = c
	return next, c, nil
}

func deleteCourse(s State, a DeleteCourse) (State, any, error) {
	i := s.courseIndex(a.CourseID)
	if i < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	removed := s.Courses[i]

	next := s.clone()
	next.Courses = make([]models.Course, 0, len(s.Courses)-1)
	for _, c := range s.Courses {
		if c.ID != a.CourseID {
			next.Courses = append(next.Courses, c)
		}
	}
	delete(next.Lessons, a.CourseID)
	delete(next.Assignments, a.CourseID)
	delete(next.Portfolios, a.CourseID)
	return next, removed, nil
}

// Lektionen

func addLesson(s State, a AddLesson, e Env) (State, any, error) {
	if s.courseIndex(a.CourseID) < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	in := a.Input
	if err := checkInput(in); err != nil {
		return s, nil, err
	}
	duration, err := strconv.Atoi(strings.TrimSpace(string(in.Duration)))
	if err != nil || duration <= 0 {
		return s, nil, invalid("duration", "muss eine positive ganze Zahl sein")
	}
	typ := in.Type
	if typ == "" {
		typ = models.LessonVideo
	}

	id := e.NewID()
	for s.lessonExists(a.CourseID, id) {
		id = e.NewID()
	}

	l := models.Lesson{
		ID:         id,
		CourseID:   a.CourseID,
		Title:      strings.TrimSpace(in.Title),
		Summary:    in.Summary,
		Duration:   duration,
		SourceLink: in.SourceLink,
		Type:       typ,
		Files:      []models.FileAttachment{},
	}

	next := s.clone()
	next.Lessons[a.CourseID] = append(append([]models.Lesson(nil), s.Lessons[a.CourseID]...), l)
	return next, l, nil
}

// completeLesson ist idempotent: der erste Zeitstempel bleibt erhalten
func completeLesson(s State, a CompleteLesson, e Env) (State, any, error) {
	if s.courseIndex(a.CourseID) < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	lessons := s.Lessons[a.CourseID]
	for i, l := range lessons {
		if l.ID != a.LessonID {
			continue
		}
		if l.Completed {
			return s, l, nil
		}
		at := e.Now
		l.Completed = true
		l.CompletedDuration = l.Duration
		l.CompletedAt = &at

		updated := append([]models.Lesson(nil), lessons...)
		updated[i] = l
		next := s.clone()
		next.Lessons[a.CourseID] = updated
		return next, l, nil
	}
	return s, nil, notFound("lektion", a.LessonID)
}

// Aufgaben

func addAssignment(s State, a AddAssignment, e Env) (State, any, error) {
	if s.courseIndex(a.CourseID) < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	in := a.Input
	if err := checkInput(in); err != nil {
		return s, nil, err
	}
	due, err := parseDate("due_date", in.DueDate, e.Location)
	if err != nil {
		return s, nil, err
	}
	typ := in.Type
	if typ == "" {
		typ = models.AssignmentProject
	}

	as := models.Assignment{
		ID:          e.NewID(),
		CourseID:    a.CourseID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Type:        typ,
		Status:      models.AssignmentPending,
		DueDate:     due,
		LessonID:    strings.TrimSpace(in.LessonID),
		Files:       []models.FileAttachment{},
	}

	next := s.clone()
	next.Assignments[a.CourseID] = append(append([]models.Assignment(nil), s.Assignments[a.CourseID]...), as)
	return next, as, nil
}

func setAssignmentStatus(s State, a SetAssignmentStatus, e Env) (State, any, error) {
	if !a.Status.Valid() {
		return s, nil, invalid("status", "muss einer von [pending completed overdue] sein")
	}
	if s.courseIndex(a.CourseID) < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	assignments := s.Assignments[a.CourseID]
	for i, as := range assignments {
		if as.ID != a.AssignmentID {
			continue
		}
		// Nur der Übergang nach "completed" setzt den Abgabezeitpunkt
		if a.Status == models.AssignmentCompleted && as.Status != models.AssignmentCompleted {
			at := e.Now
			as.SubmittedAt = &at
		}
		as.Status = a.Status

		updated := append([]models.Assignment(nil), assignments...)
		updated[i] = as
		next := s.clone()
		next.Assignments[a.CourseID] = updated
		return next, as, nil
	}
	return s, nil, notFound("aufgabe", a.AssignmentID)
}

// Portfolio

func addCertificate(s State, a AddCertificate, e Env) (State, any, error) {
	if s.courseIndex(a.CourseID) < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	in := a.Input
	if err := checkInput(in); err != nil {
		return s, nil, err
	}
	issued, err := parseDate("issue_date", in.IssueDate, e.Location)
	if err != nil {
		return s, nil, err
	}
	c := models.Certificate{
		ID:        e.NewID(),
		CourseID:  a.CourseID,
		Name:      strings.TrimSpace(in.Name),
		Issuer:    strings.TrimSpace(in.Issuer),
		IssueDate: issued,
		URL:       in.URL,
		FileURL:   in.FileURL,
	}

	p := s.Portfolios[a.CourseID]
	p.Certificates = append(append([]models.Certificate(nil), p.Certificates...), c)
	next := s.clone()
	next.Portfolios[a.CourseID] = p
	return next, c, nil
}

func addProject(s State, a AddProject, e Env) (State, any, error) {
	if s.courseIndex(a.CourseID) < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	in := a.Input
	if err := checkInput(in); err != nil {
		return s, nil, err
	}
	done, err := parseDate("completed_date", in.CompletedDate, e.Location)
	if err != nil {
		return s, nil, err
	}
	pr := models.Project{
		ID:            e.NewID(),
		CourseID:      a.CourseID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		URL:           in.URL,
		Technologies:  splitList(in.Technologies),
		CompletedDate: done,
	}

	p := s.Portfolios[a.CourseID]
	p.Projects = append(append([]models.Project(nil), p.Projects...), pr)
	next := s.clone()
	next.Portfolios[a.CourseID] = p
	return next, pr, nil
}

func addContact(s State, a AddContact, e Env) (State, any, error) {
	if s.courseIndex(a.CourseID) < 0 {
		return s, nil, notFound("kurs", a.CourseID)
	}
	p := s.Portfolios[a.CourseID]
	if len(p.Contacts) >= e.ContactLimit {
		return s, nil, fmt.Errorf("kurs %q (%d/%d): %w", a.CourseID, len(p.Contacts), e.ContactLimit, ErrContactLimit)
	}
	in := a.Input
	if err := checkInput(in); err != nil {
		return s, nil, err
	}
	c := models.ProfessionalContact{
		ID:         e.NewID(),
		CourseID:   a.CourseID,
		Name:       strings.TrimSpace(in.Name),
		Platform:   in.Platform,
		ProfileURL: in.ProfileURL,
		Field:      strings.TrimSpace(in.Field),
	}

	p.Contacts = append(append([]models.ProfessionalContact(nil), p.Contacts...), c)
	next := s.clone()
	next.Portfolios[a.CourseID] = p
	return next, c, nil
}

func replace(st State) State {
	n := st.deepCopy()
	if n.Courses == nil {
		n.Courses = []models.Course{}
	}
	return n
}
