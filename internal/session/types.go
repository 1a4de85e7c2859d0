// Package session owns conversation state: the durable store, the session
// snapshot handed to the decision engine, and the per-turn orchestration.
// Turns within one session are serialized; the engine itself stays pure.
package session

import (
	"time"

	"okrcoach/internal/antipattern"
	"okrcoach/internal/controller"
	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
)

// Session is one coaching conversation.
type Session struct {
	ID           string                  `json:"id"`
	Phase        phase.Phase             `json:"phase"`
	Objective    string                  `json:"objective,omitempty"`
	KeyResults   []string                `json:"key_results,omitempty"`
	Context      scoring.Context         `json:"context,omitempty"`
	Profile      antipattern.UserProfile `json:"profile,omitempty"`
	TurnCount    int                     `json:"turn_count"`
	TurnsInPhase int                     `json:"turns_in_phase"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// Message is one chat message in a session transcript.
type Message struct {
	Role      string    `json:"role"` // "user" or "coach"
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TurnInput is what the caller submits for one turn. Objective and
// KeyResults are explicit edits; when absent, the session's current values
// stand.
type TurnInput struct {
	UserMessage string   `json:"user_message"`
	Objective   *string  `json:"objective,omitempty"`
	KeyResults  []string `json:"key_results,omitempty"`
}

// TurnResult is everything one turn produced: the coaching reply plus the
// engine's full verdict, suitable for rendering or logging.
type TurnResult struct {
	SessionID       string                   `json:"session_id"`
	Phase           phase.Phase              `json:"phase"`
	Transitioned    bool                     `json:"transitioned"`
	Reply           string                   `json:"reply"`
	Strategy        controller.Strategy      `json:"strategy"`
	Readiness       controller.Readiness     `json:"readiness"`
	ObjectiveScore  *scoring.ObjectiveScore  `json:"objective_score,omitempty"`
	KeyResultScores []scoring.KeyResultScore `json:"key_result_scores,omitempty"`
	OverallScore    *scoring.OverallScore    `json:"overall_score,omitempty"`
	Patterns        []antipattern.Finding    `json:"patterns,omitempty"`
	Reframe         *antipattern.Reframe     `json:"reframe,omitempty"`
	Warnings        []string                 `json:"warnings,omitempty"`
}
