package controller

import (
	"strings"
	"testing"

	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
)

func discoveryState(turnsInPhase int, lastMessage string) TurnState {
	return TurnState{
		Phase:           phase.Discovery,
		Objective:       "Increase monthly recurring revenue by 35%",
		TurnsInPhase:    turnsInPhase,
		LastUserMessage: lastMessage,
	}
}

func discoveryScores(objectiveOverall int) phase.Scores {
	return phase.Scores{
		Objective: &scoring.ObjectiveScore{
			Overall: objectiveOverall,
			Level:   scoring.LevelFor(objectiveOverall),
		},
	}
}

func TestEvaluatePhaseReadinessAdvances(t *testing.T) {
	c := &Controller{}
	// Gate of 30 comfortably met, user approves, several turns in phase.
	r := c.EvaluatePhaseReadiness(discoveryState(4, "sounds good, let's move on"), discoveryScores(60), "")

	if !r.ReadyToTransition {
		t.Fatalf("expected readiness, got %+v", r)
	}
	// quality 1.0 -> 0.55, approval 0.20, turns 0.15.
	if r.ReadinessScore < 0.85 {
		t.Fatalf("readiness score = %v, want at least 0.9 components", r.ReadinessScore)
	}
}

func TestEvaluatePhaseReadinessBlockedByGate(t *testing.T) {
	c := &Controller{}
	r := c.EvaluatePhaseReadiness(discoveryState(4, "sounds good"), discoveryScores(20), "")

	if r.ReadyToTransition {
		t.Fatalf("objective below gate should not be ready: %+v", r)
	}
	found := false
	for _, reason := range r.Reasons {
		if strings.Contains(reason, "below the refinement gate") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a gate reason, got %v", r.Reasons)
	}
}

func TestEvaluatePhaseReadinessNeedsConversationSignal(t *testing.T) {
	c := &Controller{}
	// Gate met but first turn, no approval, no finalization.
	r := c.EvaluatePhaseReadiness(discoveryState(0, "here is my goal"), discoveryScores(31), "")

	if r.ReadyToTransition {
		t.Fatalf("gate alone should not advance on turn one: %+v", r)
	}
	if r.ReadinessScore >= 0.6 {
		t.Fatalf("readiness score = %v, want below threshold", r.ReadinessScore)
	}
}

func TestEvaluatePhaseReadinessFinalizationSignal(t *testing.T) {
	c := &Controller{}
	r := c.EvaluatePhaseReadiness(discoveryState(0, ""), discoveryScores(60),
		"Congratulations, your OKRs are complete and ready to export.")

	if !r.HasFinalizationSignal {
		t.Fatal("finalization phrase not detected")
	}
	if !r.ReadyToTransition {
		t.Fatalf("valid transition plus finalization should be ready: %+v", r)
	}
}

func TestEvaluatePhaseReadinessForcedAfterStall(t *testing.T) {
	c := &Controller{ForceAfterTurns: 6}
	// Objective present but scoring below the gate: forcing bypasses the
	// quality gate, not the structural precondition.
	r := c.EvaluatePhaseReadiness(discoveryState(6, "still thinking"), discoveryScores(10), "")
	if !r.ReadyToTransition {
		t.Fatalf("stalled phase should force progression: %+v", r)
	}

	empty := TurnState{Phase: phase.Discovery, TurnsInPhase: 6}
	r = c.EvaluatePhaseReadiness(empty, phase.Scores{}, "")
	if r.ReadyToTransition {
		t.Fatalf("forcing must not conjure a missing objective: %+v", r)
	}

	disabled := &Controller{}
	r = disabled.EvaluatePhaseReadiness(discoveryState(20, ""), discoveryScores(10), "")
	if r.ReadyToTransition {
		t.Fatalf("forcing disabled should never advance a failing gate: %+v", r)
	}
}

func TestEvaluatePhaseReadinessCompleted(t *testing.T) {
	c := &Controller{ForceAfterTurns: 1}
	r := c.EvaluatePhaseReadiness(TurnState{Phase: phase.Completed, TurnsInPhase: 50}, phase.Scores{}, "congratulations")
	if r.ReadyToTransition {
		t.Fatalf("completed is terminal: %+v", r)
	}
}

func TestQualityRatioPerPhase(t *testing.T) {
	krs := []scoring.KeyResultScore{{Overall: 30}, {Overall: 30}}

	if got := qualityRatio(phase.Discovery, discoveryScores(15)); got != 0.5 {
		t.Fatalf("discovery ratio = %v, want 0.5", got)
	}
	if got := qualityRatio(phase.Discovery, discoveryScores(90)); got != 1 {
		t.Fatalf("ratio should clamp at 1, got %v", got)
	}
	if got := qualityRatio(phase.KRDiscovery, phase.Scores{KeyResults: krs}); got != 0.5 {
		t.Fatalf("kr ratio = %v, want 0.5", got)
	}
	if got := qualityRatio(phase.Validation, phase.Scores{Overall: &scoring.OverallScore{Score: 20}}); got != 0.5 {
		t.Fatalf("validation ratio = %v, want 0.5", got)
	}
	if got := qualityRatio(phase.Discovery, phase.Scores{}); got != 0 {
		t.Fatalf("missing scores ratio = %v, want 0", got)
	}
}
