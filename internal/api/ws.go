package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lerntracker/internal/progress"
	"lerntracker/internal/storage"
)

const writeWait = 10 * time.Second

// feedMessage ist der Inhalt jeder Push-Nachricht
type feedMessage struct {
	Dashboard progress.Dashboard    `json:"dashboard"`
	Courses   []progress.CourseView `json:"courses"`
}

func newFeedMessage(st storage.State) feedMessage {
	return feedMessage{
		Dashboard: progress.Summarize(st.Courses),
		Courses:   progress.ViewCourses(st.Courses),
	}
}

// LiveFeed schickt Dashboard und Kursliste beim Verbinden und nach jeder Änderung
func (h *Handler) LiveFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("WebSocket-Upgrade fehlgeschlagen")
		return
	}
	defer conn.Close()

	// Nur der neueste Stand zählt, ältere werden verworfen
	updates := make(chan storage.State, 1)
	cancel := h.store.Subscribe(func(st storage.State) {
		select {
		case updates <- st:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- st:
			default:
			}
		}
	})
	defer cancel()

	// Leseschleife erkennt das Schließen durch den Client
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(st storage.State) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(newFeedMessage(st)); err != nil {
			h.log.Debug().Err(err).Msg("WebSocket-Client getrennt")
			return false
		}
		return true
	}

	if !send(h.store.Snapshot()) {
		return
	}
	for {
		select {
		case st := <-updates:
			if !send(st) {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return
		}
	}
}
