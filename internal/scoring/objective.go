package scoring

import "math"

// Scorer scores objectives and key results. The zero value works and never
// caches; use New with a Cache for the optional result cache.
type Scorer struct {
	cache Cache
}

// New returns a Scorer backed by the given cache. A nil cache disables
// caching entirely, which is the right setting for determinism tests.
func New(cache Cache) *Scorer {
	return &Scorer{cache: cache}
}

// ScoreObjective scores a single objective string against the target scope.
// It is total: malformed or empty text scores low instead of failing.
func (s *Scorer) ScoreObjective(text string, ctx Context, scope Scope) ObjectiveScore {
	if s != nil && s.cache != nil {
		key := fingerprint("obj", text, ctx, string(scope))
		if cached, ok := s.cache.GetObjective(key); ok {
			return cached
		}
		score := scoreObjective(text, ctx, scope)
		s.cache.PutObjective(key, score)
		return score
	}
	return scoreObjective(text, ctx, scope)
}

func scoreObjective(text string, ctx Context, scope Scope) ObjectiveScore {
	f := extractFeatures(text)

	dims := ObjectiveDimensions{
		OutcomeOrientation:   applyRules(baseOutcome, outcomeRules, f, ctx),
		Inspiration:          applyRules(baseInspire, inspirationRules, f, ctx),
		Clarity:              applyRules(clarityBase(f.words), clarityRules, f, ctx),
		Alignment:            applyRules(baseAlignment, alignmentRules, f, ctx),
		Ambition:             applyRules(baseAmbition, ambitionRules, f, ctx),
		ScopeAppropriateness: scoreScopeFit(f, ctx, scope),
	}

	overall := clamp(int(math.Round(
		weightOutcome*float64(dims.OutcomeOrientation) +
			weightInspire*float64(dims.Inspiration) +
			weightClarity*float64(dims.Clarity) +
			weightAlignment*float64(dims.Alignment) +
			weightAmbition*float64(dims.Ambition) +
			weightScope*float64(dims.ScopeAppropriateness))))

	feedback, improvements := objectiveFeedback(dims)

	return ObjectiveScore{
		Overall:      overall,
		Dimensions:   dims,
		Feedback:     feedback,
		Improvements: improvements,
		Level:        LevelFor(overall),
	}
}

// objectiveFeedback emits one diagnostic plus one suggested reframe per
// dimension sitting under its threshold, in fixed dimension order.
func objectiveFeedback(d ObjectiveDimensions) (feedback, improvements []string) {
	if d.OutcomeOrientation < 65 {
		feedback = append(feedback, "The objective reads more like a list of activities than an outcome.")
		improvements = append(improvements, "Ask what changes for the customer or the business when this succeeds, and lead with that.")
	}
	if d.Inspiration < 60 {
		feedback = append(feedback, "The wording is flat; it would not rally a team.")
		improvements = append(improvements, "Name the value being created, not just the work being done.")
	}
	if d.Clarity < 60 {
		feedback = append(feedback, "The objective is hard to parse at a glance.")
		improvements = append(improvements, "Trim it to a single sentence of ten to fifteen words.")
	}
	if d.Alignment < 60 {
		feedback = append(feedback, "It is unclear what business result this connects to.")
		improvements = append(improvements, "Tie the objective to a revenue, customer, or efficiency outcome.")
	}
	if d.Ambition < 55 {
		feedback = append(feedback, "The goal does not stretch beyond current performance.")
		improvements = append(improvements, "Add a target that would be uncomfortable but possible.")
	}
	if d.ScopeAppropriateness < 60 {
		feedback = append(feedback, "The language does not match the level this objective should live at.")
		improvements = append(improvements, "Rewrite it in terms the owning team can actually control.")
	}
	return feedback, improvements
}
