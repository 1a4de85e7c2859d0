package phase

import (
	"fmt"
	"strings"

	"okrcoach/internal/scoring"
)

// Quality gates per outgoing transition.
const (
	GateDiscoveryObjective  = 30
	GateRefinementObjective = 50
	GateKRDiscoveryMeanKR   = 60
	GateValidationOverall   = 40
)

// Snapshot is the structural session data the validator reads. It is a
// read-only copy; the validator never mutates session state.
type Snapshot struct {
	Objective  string
	KeyResults []string
	TurnCount  int
}

// Scores carries the latest quality scores for the snapshot. Nil pointers
// mean the corresponding data was never evaluated.
type Scores struct {
	Objective  *scoring.ObjectiveScore
	KeyResults []scoring.KeyResultScore
	Overall    *scoring.OverallScore
}

// MeanKeyResult returns the mean key-result overall, or 0 with false when
// no key result has been scored.
func (s Scores) MeanKeyResult() (float64, bool) {
	if len(s.KeyResults) == 0 {
		return 0, false
	}
	sum := 0
	for _, kr := range s.KeyResults {
		sum += kr.Overall
	}
	return float64(sum) / float64(len(s.KeyResults)), true
}

// TransitionResult is the validator's answer. Errors block the transition;
// warnings are diagnostics that never block anything.
type TransitionResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func invalid(errs ...string) TransitionResult {
	return TransitionResult{Valid: false, Errors: errs}
}

// ValidateTransition decides whether moving from one phase to another is
// legal for the given session data and scores. It always returns an answer;
// nothing here panics or errors on malformed input.
func ValidateTransition(from, to Phase, snap Snapshot, scores Scores) TransitionResult {
	if !from.Known() {
		return invalid(fmt.Sprintf("unknown current phase %q", from))
	}
	if !to.Known() {
		return invalid(fmt.Sprintf("unknown target phase %q", to))
	}
	if from == Completed {
		return invalid("session is completed; no further transitions are allowed")
	}
	if to.Rank() == from.Rank() {
		return invalid(fmt.Sprintf("already in phase %s", from))
	}
	if to.Rank() < from.Rank() {
		return invalid(fmt.Sprintf("cannot move backward from %s to %s", from, to))
	}
	if to.Rank() != from.Rank()+1 {
		return invalid(fmt.Sprintf("cannot skip from %s to %s; next phase is %s", from, to, from.Next()))
	}

	var errs []string
	switch from {
	case Discovery:
		if strings.TrimSpace(snap.Objective) == "" {
			errs = append(errs, "no objective has been extracted yet")
		}
		if scores.Objective == nil {
			errs = append(errs, "the objective has not been evaluated")
		} else if scores.Objective.Overall < GateDiscoveryObjective {
			errs = append(errs, fmt.Sprintf("objective score %d is below the refinement gate of %d", scores.Objective.Overall, GateDiscoveryObjective))
		}
	case Refinement:
		if strings.TrimSpace(snap.Objective) == "" {
			errs = append(errs, "no objective is present")
		}
		if scores.Objective == nil {
			errs = append(errs, "the objective has not been evaluated")
		} else if scores.Objective.Overall < GateRefinementObjective {
			errs = append(errs, fmt.Sprintf("objective score %d is below the key-result gate of %d", scores.Objective.Overall, GateRefinementObjective))
		}
	case KRDiscovery:
		if len(snap.KeyResults) == 0 {
			errs = append(errs, "no key results have been captured")
		}
		if mean, ok := scores.MeanKeyResult(); !ok {
			errs = append(errs, "the key results have not been evaluated")
		} else if mean < GateKRDiscoveryMeanKR {
			errs = append(errs, fmt.Sprintf("mean key-result score %.0f is below the validation gate of %d", mean, GateKRDiscoveryMeanKR))
		}
	case Validation:
		if len(snap.KeyResults) == 0 {
			errs = append(errs, "no key results are present")
		}
		if scores.Overall == nil {
			errs = append(errs, "the OKR set has not been evaluated")
		} else if scores.Overall.Score < GateValidationOverall {
			errs = append(errs, fmt.Sprintf("overall OKR score %d is below the completion gate of %d", scores.Overall.Score, GateValidationOverall))
		}
	}

	if len(errs) > 0 {
		return TransitionResult{Valid: false, Errors: errs}
	}
	return TransitionResult{Valid: true}
}

// ValidatePhaseInvariants checks that the data a phase assumes is present
// and evaluated. It only ever emits warnings; a stale session stays valid.
func ValidatePhaseInvariants(current Phase, snap Snapshot, scores Scores) TransitionResult {
	result := TransitionResult{Valid: true}
	if !current.Known() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown phase %q", current))
		return result
	}

	hasObjective := strings.TrimSpace(snap.Objective) != ""

	if current.Rank() >= Refinement.Rank() {
		if !hasObjective {
			result.Warnings = append(result.Warnings, fmt.Sprintf("phase %s expects an objective, but none is present", current))
		} else if scores.Objective == nil {
			result.Warnings = append(result.Warnings, "an objective is present but its score was never computed")
		} else if scores.Objective.Overall == 0 {
			result.Warnings = append(result.Warnings, "an objective is present but carries a zero score")
		}
	}

	if current.Rank() >= Validation.Rank() {
		if len(snap.KeyResults) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("phase %s expects key results, but none are present", current))
		} else if len(scores.KeyResults) == 0 {
			result.Warnings = append(result.Warnings, "key results are present but were never scored")
		}
	}

	return result
}
