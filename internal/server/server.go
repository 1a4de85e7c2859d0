// Package server exposes the coaching engine over HTTP: a small JSON API
// for sessions and turns, stateless scoring endpoints, and a WebSocket
// stream for interactive clients.
package server

import (
	"net/http"

	"github.com/rs/cors"

	"okrcoach/internal/scoring"
	"okrcoach/internal/session"
)

// Server holds the handler dependencies.
type Server struct {
	Manager *session.Manager
	Scorer  *scoring.Scorer
}

// New builds a server around a session manager and a scorer.
func New(manager *session.Manager, scorer *scoring.Scorer) *Server {
	return &Server{Manager: manager, Scorer: scorer}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("GET /sessions/{id}/export", s.handleExportSession)
	mux.HandleFunc("POST /sessions/{id}/turns", s.handleTurn)
	mux.HandleFunc("GET /sessions/{id}/stream", s.handleStream)

	mux.HandleFunc("POST /score/objective", s.handleScoreObjective)
	mux.HandleFunc("POST /score/keyresult", s.handleScoreKeyResult)
	mux.HandleFunc("POST /detect", s.handleDetect)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(mux)
}
