package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lerntracker/internal/models"
)

// Storage definiert die Lese-/Schreibschnittstelle für die Präsentationsschicht.
// Geschrieben wird ausschließlich über Aktionen.
type Storage interface {
	// Kurse
	AddCourse(in models.CourseInput) (*models.Course, error)
	GetCourse(id string) (*models.Course, error)
	GetAllCourses() []models.Course
	UpdateCourseProgress(id string, in models.ProgressInput) (*models.Course, error)
	DeleteCourse(id string) error

	// Lektionen
	AddLesson(courseID string, in models.LessonInput) (*models.Lesson, error)
	GetLessonsByCourse(courseID string) ([]models.Lesson, error)
	SetLessonComplete(courseID, lessonID string) (*models.Lesson, error)

	// Aufgaben
	AddAssignment(courseID string, in models.AssignmentInput) (*models.Assignment, error)
	GetAssignmentsByCourse(courseID string) ([]models.Assignment, error)
	SetAssignmentStatus(courseID, assignmentID string, status models.AssignmentStatus) (*models.Assignment, error)

	// Portfolio
	AddCertificate(courseID string, in models.CertificateInput) (*models.Certificate, error)
	AddProject(courseID string, in models.ProjectInput) (*models.Project, error)
	AddContact(courseID string, in models.ContactInput) (*models.ProfessionalContact, error)
	GetPortfolio(courseID string) (*Portfolio, error)

	// Zustand
	Dispatch(a Action) (any, error)
	Snapshot() State
	Subscribe(fn func(State)) (cancel func())
	Now() time.Time
}

// MemoryStorage hält den Zustand im Speicher. Es gibt genau einen Schreiber:
// Dispatch wendet Aktionen nacheinander an, die letzte gewinnt.
type MemoryStorage struct {
	mu    sync.Mutex
	state State

	// Benachrichtigungen laufen in der Reihenfolge der Aktionen, aber ohne
	// gehaltene Sperre: jede Aktion zieht unter mu ein Ticket
	seq        uint64
	notifyMu   sync.Mutex
	notifyTurn *sync.Cond
	notified   uint64

	subsMu  sync.Mutex
	subs    map[int]func(State)
	nextSub int

	clock        func() time.Time
	newID        func() string
	location     *time.Location
	contactLimit int
	log          zerolog.Logger
}

type Option func(*MemoryStorage)

func WithClock(clock func() time.Time) Option {
	return func(s *MemoryStorage) { s.clock = clock }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *MemoryStorage) { s.newID = newID }
}

func WithLocation(loc *time.Location) Option {
	return func(s *MemoryStorage) { s.location = loc }
}

func WithContactLimit(n int) Option {
	return func(s *MemoryStorage) { s.contactLimit = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *MemoryStorage) { s.log = l }
}

// NewMemoryStorage erstellt einen leeren Speicher
func NewMemoryStorage(opts ...Option) *MemoryStorage {
	s := &MemoryStorage{
		state:        NewState(),
		subs:         map[int]func(State){},
		clock:        time.Now,
		newID:        uuid.NewString,
		location:     time.Local,
		contactLimit: models.MaxContacts,
		log:          zerolog.Nop(),
	}
	s.notifyTurn = sync.NewCond(&s.notifyMu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStorage) Now() time.Time {
	return s.clock()
}

// Dispatch wendet eine Aktion an. Abonnenten werden nach jeder erfolgreichen
// Aktion in deren Reihenfolge benachrichtigt. Sie dürfen Snapshot und Lesezugriffe
// nutzen und sich abmelden, aber selbst kein Dispatch aufrufen.
func (s *MemoryStorage) Dispatch(a Action) (any, error) {
	s.mu.Lock()
	next, result, err := Reduce(s.state, a, Env{
		Now:          s.clock(),
		NewID:        s.newID,
		Location:     s.location,
		ContactLimit: s.contactLimit,
	})
	if err != nil {
		s.mu.Unlock()
		s.log.Debug().Err(err).Str("action", a.Name()).Msg("Aktion abgelehnt")
		return nil, err
	}
	s.state = next
	s.seq++
	ticket := s.seq
	snapshot := next.deepCopy()
	s.mu.Unlock()

	s.log.Debug().Str("action", a.Name()).Int("courses", len(snapshot.Courses)).Msg("Aktion angewendet")
	s.notify(ticket, snapshot)
	return result, nil
}

// notify wartet, bis alle früheren Tickets zugestellt sind
func (s *MemoryStorage) notify(ticket uint64, snapshot State) {
	s.notifyMu.Lock()
	for s.notified != ticket-1 {
		s.notifyTurn.Wait()
	}
	s.notifyMu.Unlock()

	for _, fn := range s.subscribers() {
		fn(snapshot)
	}

	s.notifyMu.Lock()
	s.notified = ticket
	s.notifyTurn.Broadcast()
	s.notifyMu.Unlock()
}

func (s *MemoryStorage) subscribers() []func(State) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}

// Snapshot liefert eine unabhängige Kopie des aktuellen Zustands
func (s *MemoryStorage) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.deepCopy()
}

// Subscribe registriert fn für alle künftigen Zustandsänderungen
func (s *MemoryStorage) Subscribe(fn func(State)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func dispatchAs[T any](s *MemoryStorage, a Action) (*T, error) {
	res, err := s.Dispatch(a)
	if err != nil {
		return nil, err
	}
	v, ok := res.(T)
	if !ok {
		return nil, fmt.Errorf("%s: unerwartetes Ergebnis %T", a.Name(), res)
	}
	return &v, nil
}

// Kurse

func (s *MemoryStorage) AddCourse(in models.CourseInput) (*models.Course, error) {
	return dispatchAs[models.Course](s, AddCourse{Input: in})
}

func (s *MemoryStorage) GetCourse(id string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.state.Course(id)
	if !ok {
		return nil, notFound("kurs", id)
	}
	return &c, nil
}

func (s *MemoryStorage) GetAllCourses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Course{}, s.state.Courses...)
}

func (s *MemoryStorage) UpdateCourseProgress(id string, in models.ProgressInput) (*models.Course, error) {
	return dispatchAs[models.Course](s, UpdateCourseProgress{CourseID: id, Input: in})
}

func (s *MemoryStorage) DeleteCourse(id string) error {
	_, err := s.Dispatch(DeleteCourse{CourseID: id})
	return err
}

// Lektionen

func (s *MemoryStorage) AddLesson(courseID string, in models.LessonInput) (*models.Lesson, error) {
	return dispatchAs[models.Lesson](s, AddLesson{CourseID: courseID, Input: in})
}

func (s *MemoryStorage) GetLessonsByCourse(courseID string) ([]models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.courseIndex(courseID) < 0 {
		return nil, notFound("kurs", courseID)
	}
	return append([]models.Lesson{}, s.state.Lessons[courseID]...), nil
}

func (s *MemoryStorage) SetLessonComplete(courseID, lessonID string) (*models.Lesson, error) {
	return dispatchAs[models.Lesson](s, CompleteLesson{CourseID: courseID, LessonID: lessonID})
}

// Aufgaben

func (s *MemoryStorage) AddAssignment(courseID string, in models.AssignmentInput) (*models.Assignment, error) {
	return dispatchAs[models.Assignment](s, AddAssignment{CourseID: courseID, Input: in})
}

func (s *MemoryStorage) GetAssignmentsByCourse(courseID string) ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.courseIndex(courseID) < 0 {
		return nil, notFound("kurs", courseID)
	}
	return append([]models.Assignment{}, s.state.Assignments[courseID]...), nil
}

func (s *MemoryStorage) SetAssignmentStatus(courseID, assignmentID string, status models.AssignmentStatus) (*models.Assignment, error) {
	return dispatchAs[models.Assignment](s, SetAssignmentStatus{CourseID: courseID, AssignmentID: assignmentID, Status: status})
}

// Portfolio

func (s *MemoryStorage) AddCertificate(courseID string, in models.CertificateInput) (*models.Certificate, error) {
	return dispatchAs[models.Certificate](s, AddCertificate{CourseID: courseID, Input: in})
}

func (s *MemoryStorage) AddProject(courseID string, in models.ProjectInput) (*models.Project, error) {
	return dispatchAs[models.Project](s, AddProject{CourseID: courseID, Input: in})
}

func (s *MemoryStorage) AddContact(courseID string, in models.ContactInput) (*models.ProfessionalContact, error) {
	return dispatchAs[models.ProfessionalContact](s, AddContact{CourseID: courseID, Input: in})
}

func (s *MemoryStorage) GetPortfolio(courseID string) (*Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.courseIndex(courseID) < 0 {
		return nil, notFound("kurs", courseID)
	}
	p := s.state.Portfolios[courseID]
	return &Portfolio{
		Certificates: append([]models.Certificate{}, p.Certificates...),
		Projects:     append([]models.Project{}, p.Projects...),
		Contacts:     append([]models.ProfessionalContact{}, p.Contacts...),
	}, nil
}

// ContactLimit ist die konfigurierte Obergrenze für Kontakte pro Kurs
func (s *MemoryStorage) ContactLimit() int {
	return s.contactLimit
}

// IsNotFound und IsValidation erleichtern die Fehlerzuordnung in der API
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
