package api

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewRouter erstellt den HTTP-Router mit allen Endpoints
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogger(h.log))

	// API-Version
	api := r.PathPrefix("/api/v1").Subrouter()

	// System
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")
	api.HandleFunc("/catalog", h.GetCatalog).Methods("GET")
	api.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")

	// Kurse
	api.HandleFunc("/courses", h.GetCourses).Methods("GET")
	api.HandleFunc("/courses", h.CreateCourse).Methods("POST")
	api.HandleFunc("/courses/{id}", h.GetCourse).Methods("GET")
	api.HandleFunc("/courses/{id}", h.DeleteCourse).Methods("DELETE")
	api.HandleFunc("/courses/{id}/progress", h.UpdateCourseProgress).Methods("PUT")
	api.HandleFunc("/courses/{id}/stats", h.GetCourseStats).Methods("GET")

	// Lektionen
	api.HandleFunc("/courses/{id}/lessons", h.GetLessons).Methods("GET")
	api.HandleFunc("/courses/{id}/lessons", h.CreateLesson).Methods("POST")
	api.HandleFunc("/courses/{id}/lessons/{lessonId}/complete", h.CompleteLesson).Methods("POST")

	// Aufgaben
	api.HandleFunc("/courses/{id}/assignments", h.GetAssignments).Methods("GET")
	api.HandleFunc("/courses/{id}/assignments", h.CreateAssignment).Methods("POST")
	api.HandleFunc("/courses/{id}/assignments/{assignmentId}/status", h.UpdateAssignmentStatus).Methods("PUT")

	// Portfolio
	api.HandleFunc("/courses/{id}/portfolio", h.GetPortfolio).Methods("GET")
	api.HandleFunc("/courses/{id}/portfolio/certificates", h.CreateCertificate).Methods("POST")
	api.HandleFunc("/courses/{id}/portfolio/projects", h.CreateProject).Methods("POST")
	api.HandleFunc("/courses/{id}/portfolio/contacts", h.CreateContact).Methods("POST")

	// Live-Updates
	api.HandleFunc("/ws", h.LiveFeed).Methods("GET")

	// CORS für lokale Entwicklung
	origins := h.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}

// requestLogger protokolliert jede Anfrage mit Status und Dauer
func requestLogger(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Debug().
				Str("method", r.Method).
				Str("uri", r.URL.RequestURI()).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("Anfrage")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack wird für das WebSocket-Upgrade gebraucht
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack nicht unterstützt")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}
