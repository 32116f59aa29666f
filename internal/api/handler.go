package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"lerntracker/internal/config"
	"lerntracker/internal/models"
	"lerntracker/internal/progress"
	"lerntracker/internal/storage"
)

// Handler verwaltet alle API-Endpunkte
type Handler struct {
	store    storage.Storage
	config   *config.Config
	rules    progress.Rules
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewHandler erstellt einen neuen API-Handler
func NewHandler(store storage.Storage, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		store:  store,
		config: cfg,
		rules:  cfg.Rules(),
		log:    log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Response-Helper
func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}

// storeError ordnet Fehler des Speichers einem Statuscode zu
func (h *Handler) storeError(w http.ResponseWriter, err error) {
	var ve *storage.ValidationError
	switch {
	case errors.As(err, &ve):
		jsonResponse(w, map[string]string{"error": ve.Error(), "field": ve.Field}, http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrNotFound):
		errorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrContactLimit):
		errorResponse(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error().Err(err).Msg("Unerwarteter Fehler")
		errorResponse(w, "Interner Fehler", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// === System Endpoints ===

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"status":    "ok",
		"courses":   len(h.store.GetAllCourses()),
		"timestamp": h.store.Now(),
	}, http.StatusOK)
}

// GetCatalog liefert die Auswahllisten der Formulare
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"platforms":  models.KnownPlatforms,
		"categories": models.KnownCategories,
		"course_statuses": []models.CourseStatus{
			models.CourseNotStarted, models.CourseInProgress, models.CourseCompleted,
		},
		"lesson_types": []models.LessonType{
			models.LessonVideo, models.LessonArticle, models.LessonExercise, models.LessonQuiz,
		},
		"assignment_types": []models.AssignmentType{
			models.AssignmentProject, models.AssignmentQuiz, models.AssignmentEssay,
			models.AssignmentExercise, models.AssignmentPresentation,
		},
		"contact_platforms": []models.ContactPlatform{
			models.PlatformLinkedIn, models.PlatformTwitter, models.PlatformYouTube,
			models.PlatformGitHub, models.PlatformOther,
		},
		"contact_limit": h.config.ContactLimit,
	}, http.StatusOK)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, progress.Summarize(h.store.GetAllCourses()), http.StatusOK)
}

// === Kurs Endpoints ===

// GetCourses filtert per ?q= und ?status=
func (h *Handler) GetCourses(w http.ResponseWriter, r *http.Request) {
	status, ok := models.ParseStatusFilter(r.URL.Query().Get("status"))
	if !ok {
		errorResponse(w, "Ungültiger Statusfilter", http.StatusBadRequest)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	courses := progress.Filter(h.store.GetAllCourses(), query, status)
	jsonResponse(w, progress.ViewCourses(courses), http.StatusOK)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in models.CourseInput
	if err := decodeJSON(r, &in); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	course, err := h.store.AddCourse(in)
	if err != nil {
		h.storeError(w, err)
		return
	}

	h.log.Info().Str("course", course.ID).Str("title", course.Title).Msg("Kurs angelegt")
	jsonResponse(w, progress.ViewCourse(*course), http.StatusCreated)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.store.GetCourse(mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, progress.ViewCourse(*course), http.StatusOK)
}

func (h *Handler) UpdateCourseProgress(w http.ResponseWriter, r *http.Request) {
	var in models.ProgressInput
	if err := decodeJSON(r, &in); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	course, err := h.store.UpdateCourseProgress(mux.Vars(r)["id"], in)
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, progress.ViewCourse(*course), http.StatusOK)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.DeleteCourse(id); err != nil {
		h.storeError(w, err)
		return
	}

	h.log.Info().Str("course", id).Msg("Kurs gelöscht")
	jsonResponse(w, map[string]string{"message": "Kurs gelöscht"}, http.StatusOK)
}

// GetCourseStats liefert die Kennzahlen der Detailansicht
func (h *Handler) GetCourseStats(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	lessons, err := h.store.GetLessonsByCourse(id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	assignments, err := h.store.GetAssignmentsByCourse(id)
	if err != nil {
		h.storeError(w, err)
		return
	}

	jsonResponse(w, progress.CourseDetail(lessons, assignments), http.StatusOK)
}

// === Lektion Endpoints ===

func (h *Handler) GetLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.store.GetLessonsByCourse(mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, progress.ViewLessons(lessons), http.StatusOK)
}

func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var in models.LessonInput
	if err := decodeJSON(r, &in); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	lesson, err := h.store.AddLesson(mux.Vars(r)["id"], in)
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, progress.ViewLessons([]models.Lesson{*lesson})[0], http.StatusCreated)
}

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lesson, err := h.store.SetLessonComplete(vars["id"], vars["lessonId"])
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, progress.ViewLessons([]models.Lesson{*lesson})[0], http.StatusOK)
}

// === Aufgaben Endpoints ===

func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.store.GetAssignmentsByCourse(mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, h.rules.ViewAssignments(assignments, h.store.Now()), http.StatusOK)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var in models.AssignmentInput
	if err := decodeJSON(r, &in); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	assignment, err := h.store.AddAssignment(mux.Vars(r)["id"], in)
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, h.assignmentView(*assignment), http.StatusCreated)
}

func (h *Handler) UpdateAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Status models.AssignmentStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	assignment, err := h.store.SetAssignmentStatus(vars["id"], vars["assignmentId"], req.Status)
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, h.assignmentView(*assignment), http.StatusOK)
}

func (h *Handler) assignmentView(a models.Assignment) progress.AssignmentView {
	return progress.AssignmentView{Assignment: a, Urgency: h.rules.Assess(a, h.store.Now())}
}

// === Portfolio Endpoints ===

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPortfolio(mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, err)
		return
	}

	remaining := h.config.ContactLimit - len(p.Contacts)
	if remaining < 0 {
		remaining = 0
	}
	jsonResponse(w, map[string]interface{}{
		"certificates":       p.Certificates,
		"projects":           p.Projects,
		"contacts":           p.Contacts,
		"contacts_remaining": remaining,
	}, http.StatusOK)
}

func (h *Handler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var in models.CertificateInput
	if err := decodeJSON(r, &in); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	cert, err := h.store.AddCertificate(mux.Vars(r)["id"], in)
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, cert, http.StatusCreated)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectInput
	if err := decodeJSON(r, &in); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	project, err := h.store.AddProject(mux.Vars(r)["id"], in)
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, project, http.StatusCreated)
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		errorResponse(w, "Ungültige Anfrage", http.StatusBadRequest)
		return
	}

	contact, err := h.store.AddContact(mux.Vars(r)["id"], in)
	if err != nil {
		h.storeError(w, err)
		return
	}
	jsonResponse(w, contact, http.StatusCreated)
}
