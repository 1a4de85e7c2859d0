package phase

import (
	"strings"
	"testing"

	"okrcoach/internal/scoring"
)

func objScore(overall int) *scoring.ObjectiveScore {
	return &scoring.ObjectiveScore{Overall: overall, Level: scoring.LevelFor(overall)}
}

func krScores(overalls ...int) []scoring.KeyResultScore {
	var out []scoring.KeyResultScore
	for _, v := range overalls {
		out = append(out, scoring.KeyResultScore{Overall: v, Level: scoring.LevelFor(v)})
	}
	return out
}

func TestValidateTransitionStructural(t *testing.T) {
	snap := Snapshot{Objective: "Increase revenue", KeyResults: []string{"kr"}}
	scores := Scores{Objective: objScore(80), KeyResults: krScores(80), Overall: &scoring.OverallScore{Score: 80}}

	cases := []struct {
		name      string
		from, to  Phase
		wantValid bool
		wantErr   string
	}{
		{"forward discovery", Discovery, Refinement, true, ""},
		{"same phase", Refinement, Refinement, false, "already in phase"},
		{"backward", Validation, Discovery, false, "cannot move backward"},
		{"skip", Discovery, KRDiscovery, false, "cannot skip"},
		{"terminal", Completed, Completed, false, "session is completed"},
		{"unknown from", Phase("limbo"), Refinement, false, "unknown current phase"},
		{"unknown to", Discovery, Phase("limbo"), false, "unknown target phase"},
	}
	for _, tc := range cases {
		got := ValidateTransition(tc.from, tc.to, snap, scores)
		if got.Valid != tc.wantValid {
			t.Fatalf("%s: valid = %v, want %v (errors: %v)", tc.name, got.Valid, tc.wantValid, got.Errors)
		}
		if tc.wantErr != "" {
			if len(got.Errors) == 0 || !strings.Contains(got.Errors[0], tc.wantErr) {
				t.Fatalf("%s: errors = %v, want one containing %q", tc.name, got.Errors, tc.wantErr)
			}
		}
	}
}

func TestValidateTransitionGateBoundaries(t *testing.T) {
	snap := Snapshot{Objective: "Increase revenue", KeyResults: []string{"kr one", "kr two"}}

	// Discovery gate sits at 30: 29 blocks, 30 passes.
	blocked := ValidateTransition(Discovery, Refinement, snap, Scores{Objective: objScore(29)})
	if blocked.Valid {
		t.Fatal("objective 29 should block discovery -> refinement")
	}
	passed := ValidateTransition(Discovery, Refinement, snap, Scores{Objective: objScore(30)})
	if !passed.Valid {
		t.Fatalf("objective 30 should pass discovery -> refinement: %v", passed.Errors)
	}

	// Refinement gate sits at 50.
	if ValidateTransition(Refinement, KRDiscovery, snap, Scores{Objective: objScore(49)}).Valid {
		t.Fatal("objective 49 should block refinement -> kr_discovery")
	}
	if !ValidateTransition(Refinement, KRDiscovery, snap, Scores{Objective: objScore(50)}).Valid {
		t.Fatal("objective 50 should pass refinement -> kr_discovery")
	}

	// KR discovery gate is a mean of 60: 59/60 and 61/60 straddle it.
	under := Scores{Objective: objScore(80), KeyResults: krScores(59, 60)}
	if ValidateTransition(KRDiscovery, Validation, snap, under).Valid {
		t.Fatal("mean 59.5 should block kr_discovery -> validation")
	}
	over := Scores{Objective: objScore(80), KeyResults: krScores(60, 61)}
	if !ValidateTransition(KRDiscovery, Validation, snap, over).Valid {
		t.Fatal("mean 60.5 should pass kr_discovery -> validation")
	}

	// Validation gate sits at 40 on the blended set score.
	if ValidateTransition(Validation, Completed, snap, Scores{Overall: &scoring.OverallScore{Score: 39}}).Valid {
		t.Fatal("overall 39 should block validation -> completed")
	}
	if !ValidateTransition(Validation, Completed, snap, Scores{Overall: &scoring.OverallScore{Score: 40}}).Valid {
		t.Fatal("overall 40 should pass validation -> completed")
	}
}

func TestValidateTransitionMissingData(t *testing.T) {
	empty := Snapshot{}

	got := ValidateTransition(Discovery, Refinement, empty, Scores{})
	if got.Valid {
		t.Fatal("empty session should not leave discovery")
	}
	if len(got.Errors) != 2 {
		t.Fatalf("expected missing-objective and unevaluated errors, got %v", got.Errors)
	}

	noKRs := Snapshot{Objective: "Increase revenue"}
	if ValidateTransition(KRDiscovery, Validation, noKRs, Scores{Objective: objScore(80)}).Valid {
		t.Fatal("kr_discovery should not advance without key results")
	}
}

func TestMeanKeyResult(t *testing.T) {
	if _, ok := (Scores{}).MeanKeyResult(); ok {
		t.Fatal("no key results should report no mean")
	}
	mean, ok := Scores{KeyResults: krScores(60, 70, 80)}.MeanKeyResult()
	if !ok || mean != 70 {
		t.Fatalf("mean = %v, %v; want 70, true", mean, ok)
	}
}

func TestValidatePhaseInvariants(t *testing.T) {
	clean := ValidatePhaseInvariants(Refinement,
		Snapshot{Objective: "Increase revenue"},
		Scores{Objective: objScore(60)})
	if len(clean.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", clean.Warnings)
	}

	stale := ValidatePhaseInvariants(Validation, Snapshot{}, Scores{})
	if !stale.Valid {
		t.Fatal("invariant check should never invalidate a session")
	}
	if len(stale.Warnings) < 2 {
		t.Fatalf("expected warnings for missing objective and key results, got %v", stale.Warnings)
	}
}
