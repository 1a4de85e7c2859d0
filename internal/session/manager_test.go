package session

import (
	"context"
	"path/filepath"
	"testing"

	"okrcoach/internal/antipattern"
	"okrcoach/internal/audit"
	"okrcoach/internal/coach"
	"okrcoach/internal/controller"
	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
)

func newTestManager(t *testing.T, ctrl *controller.Controller) (*Manager, *Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "sessions.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	if ctrl == nil {
		ctrl = &controller.Controller{}
	}
	m := NewManager(store, scoring.New(nil), ctrl, &coach.MockAdapter{},
		audit.NewLogger(filepath.Join(dir, "audit.db")))
	return m, store
}

func turn(t *testing.T, m *Manager, id string, input TurnInput) *TurnResult {
	t.Helper()
	result, err := m.ProcessTurn(context.Background(), id, input)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestProcessTurnCapturesObjectiveInDiscovery(t *testing.T) {
	m, _ := newTestManager(t, nil)
	sess, err := m.Create(scoring.Context{}, antipattern.UserProfile{})
	if err != nil {
		t.Fatal(err)
	}

	objective := "Increase monthly recurring revenue by 35% through improved customer retention and new customer acquisition"
	result := turn(t, m, sess.ID, TurnInput{UserMessage: "  " + objective + "  "})

	if result.ObjectiveScore == nil {
		t.Fatal("expected an objective score")
	}
	if got, want := result.ObjectiveScore.Overall, 74; got != want {
		t.Fatalf("objective score = %d, want %d", got, want)
	}
	if result.Transitioned {
		t.Fatal("first turn should not transition yet")
	}

	loaded, err := m.Get(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Objective != objective {
		t.Fatalf("objective = %q, want the trimmed chat message", loaded.Objective)
	}
	if loaded.TurnCount != 1 || loaded.TurnsInPhase != 1 {
		t.Fatalf("turn counters = %d/%d, want 1/1", loaded.TurnCount, loaded.TurnsInPhase)
	}
}

func TestProcessTurnFullCoachingFlow(t *testing.T) {
	m, _ := newTestManager(t, nil)
	sess, err := m.Create(scoring.Context{}, antipattern.UserProfile{})
	if err != nil {
		t.Fatal(err)
	}

	objective := "Increase monthly recurring revenue by 35% through improved customer retention and new customer acquisition"
	krs := []string{
		"Increase NPS from 40 to 60 by Q3",
		"Improve customer retention rate from 80% to 90%",
	}

	// Turn 1: objective lands, conversation has not settled.
	r := turn(t, m, sess.ID, TurnInput{UserMessage: objective})
	if r.Phase != phase.Discovery || r.Transitioned {
		t.Fatalf("turn 1: phase %q transitioned=%v, want discovery without transition", r.Phase, r.Transitioned)
	}

	// Turn 2: approval carries the session into refinement.
	r = turn(t, m, sess.ID, TurnInput{UserMessage: "sounds good, let's move on"})
	if r.Phase != phase.Refinement || !r.Transitioned {
		t.Fatalf("turn 2: phase %q transitioned=%v, want refinement", r.Phase, r.Transitioned)
	}

	// Turn 3: objective already clears the refinement gate.
	r = turn(t, m, sess.ID, TurnInput{UserMessage: "yes, looks good"})
	if r.Phase != phase.KRDiscovery || !r.Transitioned {
		t.Fatalf("turn 3: phase %q transitioned=%v, want kr_discovery", r.Phase, r.Transitioned)
	}

	// Turn 4: key results arrive and clear the mean gate.
	r = turn(t, m, sess.ID, TurnInput{UserMessage: "yes, looks good", KeyResults: krs})
	if r.Phase != phase.Validation || !r.Transitioned {
		t.Fatalf("turn 4: phase %q transitioned=%v, want validation", r.Phase, r.Transitioned)
	}
	if len(r.KeyResultScores) != 2 {
		t.Fatalf("expected 2 key result scores, got %d", len(r.KeyResultScores))
	}

	// Turn 5: the blended set clears the completion gate.
	r = turn(t, m, sess.ID, TurnInput{UserMessage: "perfect"})
	if r.Phase != phase.Completed || !r.Transitioned {
		t.Fatalf("turn 5: phase %q transitioned=%v, want completed", r.Phase, r.Transitioned)
	}
	if r.OverallScore == nil || r.OverallScore.Score < 40 {
		t.Fatalf("overall score should clear the completion gate: %#v", r.OverallScore)
	}

	// Turn 6: completed is terminal.
	r = turn(t, m, sess.ID, TurnInput{UserMessage: "perfect"})
	if r.Phase != phase.Completed || r.Transitioned {
		t.Fatalf("turn 6: phase %q transitioned=%v, want terminal completed", r.Phase, r.Transitioned)
	}
}

func TestProcessTurnGateBlocksWeakObjective(t *testing.T) {
	m, store := newTestManager(t, nil)
	sess, err := m.Create(scoring.Context{}, antipattern.UserProfile{})
	if err != nil {
		t.Fatal(err)
	}
	sess.Phase = phase.Refinement
	sess.Objective = "Launch a campaign"
	sess.TurnsInPhase = 4
	if err := store.Update(sess); err != nil {
		t.Fatal(err)
	}

	r := turn(t, m, sess.ID, TurnInput{UserMessage: "yes, looks good, perfect"})
	if r.Transitioned {
		t.Fatalf("weak objective must not leave refinement: %+v", r)
	}
	if r.Phase != phase.Refinement {
		t.Fatalf("phase = %q, want refinement", r.Phase)
	}
}

func TestProcessTurnForcedProgression(t *testing.T) {
	m, store := newTestManager(t, &controller.Controller{ForceAfterTurns: 3})
	sess, err := m.Create(scoring.Context{}, antipattern.UserProfile{})
	if err != nil {
		t.Fatal(err)
	}
	sess.Phase = phase.Refinement
	sess.Objective = "Launch a campaign"
	sess.TurnsInPhase = 3
	if err := store.Update(sess); err != nil {
		t.Fatal(err)
	}

	r := turn(t, m, sess.ID, TurnInput{UserMessage: "still thinking"})
	if !r.Transitioned || r.Phase != phase.KRDiscovery {
		t.Fatalf("stalled refinement should be forced forward: %+v", r)
	}
}

func TestProcessTurnExplicitObjectiveEdit(t *testing.T) {
	m, _ := newTestManager(t, nil)
	sess, err := m.Create(scoring.Context{}, antipattern.UserProfile{})
	if err != nil {
		t.Fatal(err)
	}

	first := "Launch a campaign"
	turn(t, m, sess.ID, TurnInput{UserMessage: first})

	revised := "Increase qualified pipeline from $2M to $5M"
	r := turn(t, m, sess.ID, TurnInput{UserMessage: "reworked it", Objective: &revised})
	if r.ObjectiveScore == nil {
		t.Fatal("expected a score for the revised objective")
	}

	loaded, err := m.Get(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Objective != revised {
		t.Fatalf("objective = %q, want the explicit edit", loaded.Objective)
	}
}

func TestProcessTurnMissingSession(t *testing.T) {
	m, _ := newTestManager(t, nil)
	if _, err := m.ProcessTurn(context.Background(), "no-such-id", TurnInput{UserMessage: "hi"}); err == nil {
		t.Fatal("expected an error for a missing session")
	}
}
