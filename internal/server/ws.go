package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"okrcoach/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// CORS is enforced on the REST surface; the stream accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsError struct {
	Error string `json:"error"`
}

// handleStream runs a session over a WebSocket: each client message is a
// turn input, each server message the resulting turn. The first frame sent
// is the current session state.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := s.Manager.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(sess); err != nil {
		return
	}

	for {
		var input session.TurnInput
		if err := conn.ReadJSON(&input); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}

		result, err := s.Manager.ProcessTurn(r.Context(), id, input)
		if err != nil {
			_ = conn.WriteJSON(wsError{Error: err.Error()})
			continue
		}
		if err := conn.WriteJSON(result); err != nil {
			return
		}
	}
}
