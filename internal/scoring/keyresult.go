package scoring

import "math"

// ScoreKeyResult scores a single key-result string. Total function; empty
// or malformed text scores low with explanatory feedback.
func (s *Scorer) ScoreKeyResult(text string, ctx Context) KeyResultScore {
	if s != nil && s.cache != nil {
		key := fingerprint("kr", text, ctx, "")
		if cached, ok := s.cache.GetKeyResult(key); ok {
			return cached
		}
		score := scoreKeyResult(text, ctx)
		s.cache.PutKeyResult(key, score)
		return score
	}
	return scoreKeyResult(text, ctx)
}

func scoreKeyResult(text string, ctx Context) KeyResultScore {
	f := extractFeatures(text)

	dims := KeyResultDimensions{
		Quantification:    applyRules(baseQuantification, quantificationRules, f, ctx),
		OutcomeVsActivity: applyRules(baseOutcomeVsAct, outcomeVsActivityRules, f, ctx),
		Feasibility:       applyRules(baseFeasibility, feasibilityRules, f, ctx),
		Independence:      applyRules(baseIndependence, independenceRules, f, ctx),
		Challenge:         applyRules(baseChallenge, challengeRules, f, ctx),
	}

	overall := clamp(int(math.Round(
		weightQuantification*float64(dims.Quantification) +
			weightOutcomeVsAct*float64(dims.OutcomeVsActivity) +
			weightFeasibility*float64(dims.Feasibility) +
			weightIndependence*float64(dims.Independence) +
			weightChallenge*float64(dims.Challenge))))

	feedback, improvements := keyResultFeedback(dims)

	return KeyResultScore{
		Overall:      overall,
		Dimensions:   dims,
		Feedback:     feedback,
		Improvements: improvements,
		Level:        LevelFor(overall),
	}
}

func keyResultFeedback(d KeyResultDimensions) (feedback, improvements []string) {
	if d.Quantification < 60 {
		feedback = append(feedback, "The key result has no measurable target.")
		improvements = append(improvements, "State a number, ideally as a baseline-to-target move like \"from 40 to 60\".")
	}
	if d.OutcomeVsActivity < 60 {
		feedback = append(feedback, "This measures work completed rather than a result achieved.")
		improvements = append(improvements, "Replace the task with the metric the task is supposed to move.")
	}
	if d.Feasibility < 50 {
		feedback = append(feedback, "The target looks out of reach for a single cycle.")
		improvements = append(improvements, "Scale the target to what one quarter of focused work could deliver.")
	}
	if d.Independence < 55 {
		feedback = append(feedback, "This key result depends on other work landing first.")
		improvements = append(improvements, "Split it so each key result stands on its own measurement.")
	}
	if d.Challenge < 50 {
		feedback = append(feedback, "The target would likely be hit without changing anything.")
		improvements = append(improvements, "Push the number past the comfortable forecast.")
	}
	return feedback, improvements
}
