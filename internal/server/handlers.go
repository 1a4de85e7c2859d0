package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"okrcoach/internal/antipattern"
	"okrcoach/internal/controller"
	"okrcoach/internal/export"
	"okrcoach/internal/scoring"
	"okrcoach/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createSessionRequest struct {
	Context scoring.Context         `json:"context"`
	Profile antipattern.UserProfile `json:"profile"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	sess, err := s.Manager.Create(req.Context, req.Profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Manager.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Manager.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	doc, err := export.Build(sess, s.Scorer, time.Now())
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out, err := export.Render(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var input session.TurnInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	result, err := s.Manager.ProcessTurn(r.Context(), r.PathValue("id"), input)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type scoreObjectiveRequest struct {
	Text    string          `json:"text"`
	Context scoring.Context `json:"context"`
	Scope   scoring.Scope   `json:"scope,omitempty"`
}

func (s *Server) handleScoreObjective(w http.ResponseWriter, r *http.Request) {
	var req scoreObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	scope := req.Scope
	if scope == "" {
		scope = controller.DetectObjectiveScope(req.Text, req.Context)
	}
	writeJSON(w, http.StatusOK, s.Scorer.ScoreObjective(req.Text, req.Context, scope))
}

type scoreKeyResultRequest struct {
	Text    string          `json:"text"`
	Context scoring.Context `json:"context"`
}

func (s *Server) handleScoreKeyResult(w http.ResponseWriter, r *http.Request) {
	var req scoreKeyResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(w, http.StatusOK, s.Scorer.ScoreKeyResult(req.Text, req.Context))
}

type detectRequest struct {
	Text    string                  `json:"text"`
	Profile antipattern.UserProfile `json:"profile"`
}

type detectResponse struct {
	Patterns []antipattern.Finding `json:"patterns"`
	Reframe  *antipattern.Reframe  `json:"reframe,omitempty"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	result := antipattern.Detect(req.Text)
	writeJSON(w, http.StatusOK, detectResponse{
		Patterns: result.Patterns,
		Reframe:  antipattern.BuildReframe(result, req.Text, req.Profile),
	})
}
