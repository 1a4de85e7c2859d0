package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"okrcoach/internal/antipattern"
	"okrcoach/internal/audit"
	"okrcoach/internal/coach"
	"okrcoach/internal/controller"
	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
)

// Manager runs one coaching turn end to end. Concurrent turns for different
// sessions proceed in parallel; turns within one session are serialized by
// a per-session mutex, since the store and the phase field are not safe to
// race on.
type Manager struct {
	store   *Store
	scorer  *scoring.Scorer
	ctrl    *controller.Controller
	adapter coach.Adapter
	audit   *audit.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager wires the engine components into a turn processor.
func NewManager(store *Store, scorer *scoring.Scorer, ctrl *controller.Controller, adapter coach.Adapter, auditLogger *audit.Logger) *Manager {
	return &Manager{
		store:   store,
		scorer:  scorer,
		ctrl:    ctrl,
		adapter: adapter,
		audit:   auditLogger,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (m *Manager) sessionLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Create starts a new session in discovery.
func (m *Manager) Create(ctx scoring.Context, profile antipattern.UserProfile) (*Session, error) {
	return m.store.Create(ctx, profile)
}

// Get loads a session.
func (m *Manager) Get(id string) (*Session, error) {
	return m.store.Get(id)
}

// Transcript returns a session's messages.
func (m *Manager) Transcript(id string, limit int) ([]Message, error) {
	return m.store.Messages(id, limit)
}

// ProcessTurn applies one user turn: update the session's objective and key
// results, score them, detect anti-patterns, pick a strategy, generate the
// coaching reply, and advance the phase when the validator allows it.
func (m *Manager) ProcessTurn(ctx context.Context, sessionID string, input TurnInput) (*TurnResult, error) {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	m.applyInput(sess, input)

	if strings.TrimSpace(input.UserMessage) != "" {
		if err := m.store.AppendMessage(sess.ID, "user", input.UserMessage); err != nil {
			return nil, err
		}
	}

	recent, err := m.store.RecentUserMessages(sess.ID, 5)
	if err != nil {
		return nil, err
	}

	state := controller.TurnState{
		Phase:              sess.Phase,
		Objective:          sess.Objective,
		KeyResults:         sess.KeyResults,
		TurnCount:          sess.TurnCount + 1,
		TurnsInPhase:       sess.TurnsInPhase + 1,
		LastUserMessage:    input.UserMessage,
		RecentUserMessages: recent,
		Context:            sess.Context,
	}

	scores, result := m.evaluate(state)
	result.SessionID = sess.ID

	strategy := controller.DetermineConversationStrategy(state)
	result.Strategy = strategy

	reply, err := m.generateReply(ctx, sess, input, strategy, result)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}
	result.Reply = reply

	readiness := m.ctrl.EvaluatePhaseReadiness(state, scores, reply)
	result.Readiness = readiness

	invariants := phase.ValidatePhaseInvariants(sess.Phase, phase.Snapshot{
		Objective:  sess.Objective,
		KeyResults: sess.KeyResults,
		TurnCount:  state.TurnCount,
	}, scores)
	result.Warnings = invariants.Warnings

	sess.TurnCount++
	sess.TurnsInPhase++

	before := sess.Phase
	if readiness.ReadyToTransition && sess.Phase != phase.Completed {
		m.advance(sess, scores, readiness)
	}
	result.Phase = sess.Phase
	result.Transitioned = sess.Phase != before

	if err := m.store.AppendMessage(sess.ID, "coach", reply); err != nil {
		return nil, err
	}
	if err := m.store.Update(sess); err != nil {
		return nil, err
	}

	return result, nil
}

// applyInput folds explicit edits into the session. During discovery a
// plain chat message doubles as the objective candidate until one exists;
// later phases only change the objective through an explicit edit.
func (m *Manager) applyInput(sess *Session, input TurnInput) {
	newObjective := sess.Objective
	switch {
	case input.Objective != nil:
		newObjective = strings.TrimSpace(*input.Objective)
	case sess.Phase == phase.Discovery && strings.TrimSpace(sess.Objective) == "":
		newObjective = strings.TrimSpace(input.UserMessage)
	}
	if newObjective != sess.Objective {
		if sess.Objective != "" {
			_ = m.audit.LogObjectiveRevision(sess.ID, sess.Objective, newObjective)
		}
		sess.Objective = newObjective
	}

	if input.KeyResults != nil {
		trimmed := make([]string, 0, len(input.KeyResults))
		for _, kr := range input.KeyResults {
			if t := strings.TrimSpace(kr); t != "" {
				trimmed = append(trimmed, t)
			}
		}
		sess.KeyResults = trimmed
	}
}

// evaluate runs the scorer and the detector over the session's current
// objective and key results.
func (m *Manager) evaluate(state controller.TurnState) (phase.Scores, *TurnResult) {
	var scores phase.Scores
	result := &TurnResult{}

	if strings.TrimSpace(state.Objective) != "" {
		scope := controller.DetectObjectiveScope(state.Objective, state.Context)
		objScore := m.scorer.ScoreObjective(state.Objective, state.Context, scope)
		scores.Objective = &objScore
		result.ObjectiveScore = &objScore

		detection := antipattern.Detect(state.Objective)
		result.Patterns = detection.Patterns
	}

	for _, kr := range state.KeyResults {
		krScore := m.scorer.ScoreKeyResult(kr, state.Context)
		scores.KeyResults = append(scores.KeyResults, krScore)
	}
	result.KeyResultScores = scores.KeyResults

	if scores.Objective != nil {
		overall := scoring.Combine(*scores.Objective, state.Objective, scores.KeyResults, state.KeyResults)
		scores.Overall = &overall
		result.OverallScore = &overall
	}

	return scores, result
}

func (m *Manager) generateReply(ctx context.Context, sess *Session, input TurnInput, strategy controller.Strategy, result *TurnResult) (string, error) {
	req := coach.Request{
		Phase:       string(sess.Phase),
		Objective:   sess.Objective,
		KeyResults:  sess.KeyResults,
		UserMessage: input.UserMessage,
		Strategy:    string(strategy),
	}
	if result.ObjectiveScore != nil {
		req.Feedback = result.ObjectiveScore.Feedback
		req.Improvements = result.ObjectiveScore.Improvements

		if reframe := antipattern.BuildReframe(antipattern.Result{Patterns: result.Patterns}, sess.Objective, sess.Profile); reframe != nil {
			result.Reframe = reframe
			req.Reframe = reframe.Suggestion
		}
	}

	reply, err := m.adapter.Reply(ctx, req)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

// advance moves the session one phase forward when the validator agrees, or
// when the stalled-phase override is active and only quality gates stand in
// the way. Every outcome is audited.
func (m *Manager) advance(sess *Session, scores phase.Scores, readiness controller.Readiness) {
	next := sess.Phase.Next()
	verdict := phase.ValidateTransition(sess.Phase, next, phase.Snapshot{
		Objective:  sess.Objective,
		KeyResults: sess.KeyResults,
		TurnCount:  sess.TurnCount,
	}, scores)

	forced := m.ctrl != nil && m.ctrl.ForceAfterTurns > 0 && sess.TurnsInPhase >= m.ctrl.ForceAfterTurns

	if !verdict.Valid && !forced {
		_ = m.audit.LogGateBlocked(sess.ID, string(sess.Phase), string(next), verdict.Errors)
		return
	}

	from := sess.Phase
	sess.Phase = next
	sess.TurnsInPhase = 0
	_ = m.audit.LogTransition(sess.ID, string(from), string(next), readiness.ReadinessScore)
}
