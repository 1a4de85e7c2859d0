// Package controller orchestrates the per-turn coaching decision: readiness
// to advance, which coaching posture to take, and what organizational scope
// the stated objective occupies. It combines the scorer, the anti-pattern
// detector, and the transition validator; it owns no session state itself.
package controller

import (
	"fmt"
	"strings"

	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
)

// TurnState is the read-only view of a session the controller works from.
type TurnState struct {
	Phase              phase.Phase
	Objective          string
	KeyResults         []string
	TurnCount          int
	TurnsInPhase       int
	LastUserMessage    string
	RecentUserMessages []string
	Context            scoring.Context
}

func (s TurnState) snapshot() phase.Snapshot {
	return phase.Snapshot{
		Objective:  s.Objective,
		KeyResults: s.KeyResults,
		TurnCount:  s.TurnCount,
	}
}

// Readiness is the controller's per-turn verdict on advancing the phase.
type Readiness struct {
	ReadyToTransition     bool     `json:"ready_to_transition"`
	ReadinessScore        float64  `json:"readiness_score"`
	HasFinalizationSignal bool     `json:"has_finalization_signal"`
	Reasons               []string `json:"reasons,omitempty"`
}

// Controller evaluates turn readiness. ForceAfterTurns is the stalled-phase
// escape hatch: when positive, a session that has sat in one phase for that
// many turns is advanced past the quality gate (structural preconditions
// still apply). Zero disables forcing.
type Controller struct {
	ForceAfterTurns int
}

// Blend weights for the readiness score.
const (
	readinessQualityWeight      = 0.55
	readinessApprovalWeight     = 0.20
	readinessTurnWeight         = 0.15
	readinessFinalizationWeight = 0.10

	readinessThreshold = 0.6
)

var finalizationPhrases = []string{
	"congratulations", "ready to export", "you're all set", "you are all set",
	"your okrs are complete", "okr set is complete", "wrap up", "finalized",
}

var approvalPhrases = []string{
	"yes", "yep", "sounds good", "looks good", "i agree", "agreed",
	"let's move on", "lets move on", "perfect", "approved", "works for me",
	"that's it", "thats it",
}

// EvaluatePhaseReadiness combines the validator's verdict with lexical
// finalization and approval signals into a readiness decision for the
// session's next forward transition.
func (c *Controller) EvaluatePhaseReadiness(state TurnState, scores phase.Scores, coachText string) Readiness {
	if state.Phase == phase.Completed {
		return Readiness{Reasons: []string{"session is already completed"}}
	}

	verdict := phase.ValidateTransition(state.Phase, state.Phase.Next(), state.snapshot(), scores)

	finalization := containsAnyPhrase(coachText, finalizationPhrases)
	approval := containsAnyPhrase(state.LastUserMessage, approvalPhrases)

	quality := qualityRatio(state.Phase, scores)
	turnFactor := float64(state.TurnsInPhase) / 4
	if turnFactor > 1 {
		turnFactor = 1
	}

	score := readinessQualityWeight * quality
	if approval {
		score += readinessApprovalWeight
	}
	score += readinessTurnWeight * turnFactor
	if finalization {
		score += readinessFinalizationWeight
	}
	if score > 1 {
		score = 1
	}

	r := Readiness{
		ReadinessScore:        score,
		HasFinalizationSignal: finalization,
		Reasons:               append([]string{}, verdict.Errors...),
	}

	switch {
	case verdict.Valid && (score >= readinessThreshold || finalization):
		r.ReadyToTransition = true
		r.Reasons = append(r.Reasons, fmt.Sprintf("quality gate met for %s", state.Phase.Next()))
	case c != nil && c.ForceAfterTurns > 0 && state.TurnsInPhase >= c.ForceAfterTurns && structurallyReady(state):
		r.ReadyToTransition = true
		r.Reasons = append(r.Reasons, fmt.Sprintf("phase %s stalled for %d turns; forcing progression", state.Phase, state.TurnsInPhase))
	case verdict.Valid:
		r.Reasons = append(r.Reasons, "quality gate met but the conversation has not settled yet")
	}

	return r
}

// qualityRatio maps the score relevant to the current phase's outgoing gate
// onto [0,1].
func qualityRatio(current phase.Phase, scores phase.Scores) float64 {
	var ratio float64
	switch current {
	case phase.Discovery:
		if scores.Objective != nil {
			ratio = float64(scores.Objective.Overall) / float64(phase.GateDiscoveryObjective)
		}
	case phase.Refinement:
		if scores.Objective != nil {
			ratio = float64(scores.Objective.Overall) / float64(phase.GateRefinementObjective)
		}
	case phase.KRDiscovery:
		if mean, ok := scores.MeanKeyResult(); ok {
			ratio = mean / float64(phase.GateKRDiscoveryMeanKR)
		}
	case phase.Validation:
		if scores.Overall != nil {
			ratio = float64(scores.Overall.Score) / float64(phase.GateValidationOverall)
		}
	}
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}

// structurallyReady mirrors the validator's structural preconditions without
// the quality gates; it decides whether forcing is even possible.
func structurallyReady(state TurnState) bool {
	switch state.Phase {
	case phase.Discovery, phase.Refinement:
		return strings.TrimSpace(state.Objective) != ""
	case phase.KRDiscovery, phase.Validation:
		return len(state.KeyResults) > 0
	default:
		return false
	}
}

func containsAnyPhrase(text string, phrases []string) bool {
	padded := " " + strings.Join(strings.Fields(strings.ToLower(strings.NewReplacer(
		",", " ", ".", " ", "!", " ", "?", " ", ";", " ", ":", " ", "'", "'",
	).Replace(text))), " ") + " "
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}
