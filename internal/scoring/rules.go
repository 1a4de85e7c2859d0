package scoring

// rule is one named, independently testable contribution to a dimension
// score. Rules return a delta from the dimension baseline; the dimension
// score is the clamped sum. Rule order within a table is fixed, which keeps
// feedback ordering deterministic.
type rule struct {
	name  string
	delta func(f features, ctx Context) int
}

func capAt(v, limit int) int {
	if limit >= 0 {
		if v > limit {
			return limit
		}
		return v
	}
	if v < limit {
		return limit
	}
	return v
}

func applyRules(base int, rules []rule, f features, ctx Context) int {
	score := base
	for _, r := range rules {
		score += r.delta(f, ctx)
	}
	return clamp(score)
}

const (
	baseOutcome   = 50
	baseInspire   = 40
	baseAlignment = 55
	baseAmbition  = 50
)

var outcomeRules = []rule{
	{"outcome_verbs", func(f features, _ Context) int {
		return capAt(f.outcomeHits*12, 24)
	}},
	{"activity_verbs", func(f features, _ Context) int {
		return capAt(f.activityHits*-15, -30)
	}},
	{"measurable_target", func(f features, _ Context) int {
		if f.measurable() {
			return 10
		}
		return 0
	}},
	{"missing_outcome_framing", func(f features, _ Context) int {
		if f.outcomeHits == 0 {
			return -15
		}
		return 0
	}},
}

var inspirationRules = []rule{
	{"aspirational_language", func(f features, _ Context) int {
		return capAt(f.inspirationHits*15, 30)
	}},
	{"value_language", func(f features, _ Context) int {
		return capAt(f.valueHits*6, 18)
	}},
	{"forward_energy", func(f features, _ Context) int {
		if f.outcomeHits > 0 {
			return 10
		}
		return 0
	}},
	{"vague_language", func(f features, _ Context) int {
		return capAt(f.vagueHits*-8, -24)
	}},
	{"flat_language", func(f features, _ Context) int {
		if f.inspirationHits == 0 && f.valueHits == 0 {
			return -15
		}
		return 0
	}},
}

// clarityBase implements the word-count sweet spot: short objectives read
// best, and anything past thirty words has stopped being a statement.
func clarityBase(words int) int {
	switch {
	case words == 0:
		return 10
	case words <= 10:
		return 90
	case words <= 15:
		return 75
	case words <= 20:
		return 60
	case words <= 30:
		return 45
	default:
		return 30
	}
}

var clarityRules = []rule{
	{"vague_language", func(f features, _ Context) int {
		return capAt(f.vagueHits*-8, -24)
	}},
	{"conjunction_overload", func(f features, _ Context) int {
		if f.andCount >= 3 {
			return -10
		}
		return 0
	}},
}

var alignmentRules = []rule{
	{"business_value_link", func(f features, _ Context) int {
		if f.valueHits > 0 {
			return 12
		}
		return 0
	}},
	{"timeframe_anchor", func(f features, _ Context) int {
		if f.hasDateRef {
			return 8
		}
		return 0
	}},
	{"activity_without_outcome", func(f features, _ Context) int {
		if f.activityHits > 0 && f.outcomeHits == 0 {
			return -15
		}
		return 0
	}},
	{"no_value_link", func(f features, _ Context) int {
		if f.valueHits == 0 {
			return -20
		}
		return 0
	}},
	{"context_echo", func(f features, ctx Context) int {
		bonus := 0
		if ctx.Industry != "" && hasHit(f.padded, []string{normalizeWord(ctx.Industry)}) {
			bonus += 5
		}
		if ctx.Function != "" && hasHit(f.padded, []string{normalizeWord(ctx.Function)}) {
			bonus += 5
		}
		return bonus
	}},
}

var ambitionRules = []rule{
	{"stretch_percent", func(f features, _ Context) int {
		switch {
		case f.maxPercent >= 30:
			return 18
		case f.maxPercent >= 15:
			return 12
		case f.hasPercent:
			return 8
		default:
			return 0
		}
	}},
	{"multiplier_stretch", func(f features, _ Context) int {
		if f.hasMultiplier {
			return 15
		}
		return 0
	}},
	{"aspirational_stretch", func(f features, _ Context) int {
		if f.inspirationHits > 0 {
			return 8
		}
		return 0
	}},
	{"maintenance_language", func(f features, _ Context) int {
		return capAt(f.maintenanceHits*-15, -30)
	}},
	{"no_quantified_ambition", func(f features, _ Context) int {
		if !f.hasDigit && f.inspirationHits == 0 {
			return -20
		}
		return 0
	}},
}

const (
	baseQuantification = 30
	baseOutcomeVsAct   = 50
	baseFeasibility    = 60
	baseIndependence   = 70
	baseChallenge      = 50
)

var quantificationRules = []rule{
	{"has_number", func(f features, _ Context) int {
		if f.hasDigit {
			return 25
		}
		return 0
	}},
	{"has_percent", func(f features, _ Context) int {
		if f.hasPercent {
			return 10
		}
		return 0
	}},
	{"has_currency", func(f features, _ Context) int {
		if f.hasCurrency {
			return 10
		}
		return 0
	}},
	{"baseline_to_target", func(f features, _ Context) int {
		if f.hasFromTo {
			return 20
		}
		return 0
	}},
	{"deadline", func(f features, _ Context) int {
		if f.hasDateRef {
			return 10
		}
		return 0
	}},
	{"vague_language", func(f features, _ Context) int {
		if f.vagueHits > 0 {
			return -10
		}
		return 0
	}},
}

var outcomeVsActivityRules = []rule{
	{"outcome_verbs", func(f features, _ Context) int {
		return capAt(f.outcomeHits*12, 24)
	}},
	{"activity_verbs", func(f features, _ Context) int {
		return capAt(f.activityHits*-12, -24)
	}},
	{"metric_noun", func(f features, _ Context) int {
		if f.metricHits > 0 {
			return 10
		}
		return 0
	}},
	{"missing_outcome_framing", func(f features, _ Context) int {
		if f.outcomeHits == 0 {
			return -10
		}
		return 0
	}},
}

var feasibilityRules = []rule{
	{"extreme_target", func(f features, _ Context) int {
		if f.maxPercent >= 500 || f.maxMultiplier >= 10 {
			return -20
		}
		if f.maxPercent >= 200 {
			return -10
		}
		return 0
	}},
	{"deadline", func(f features, _ Context) int {
		if f.hasDateRef {
			return 10
		}
		return 0
	}},
	{"known_baseline", func(f features, _ Context) int {
		if f.hasFromTo {
			return 5
		}
		return 0
	}},
}

var independenceRules = []rule{
	{"dependency_language", func(f features, _ Context) int {
		return capAt(f.dependencyHits*-15, -30)
	}},
	{"entangled_metrics", func(f features, _ Context) int {
		if f.andCount >= 2 && f.metricHits >= 2 {
			return -10
		}
		return 0
	}},
	{"single_measure", func(f features, _ Context) int {
		if f.metricHits <= 1 && f.andCount < 2 {
			return 10
		}
		return 0
	}},
}

var challengeRules = []rule{
	{"stretch_percent", func(f features, _ Context) int {
		switch {
		case f.maxPercent >= 40:
			return 25
		case f.maxPercent >= 20:
			return 15
		case f.hasPercent:
			return 8
		default:
			return 0
		}
	}},
	{"baseline_to_target", func(f features, _ Context) int {
		if f.hasFromTo {
			return 12
		}
		return 0
	}},
	{"multiplier_stretch", func(f features, _ Context) int {
		if f.hasMultiplier {
			return 10
		}
		return 0
	}},
	{"maintenance_language", func(f features, _ Context) int {
		return capAt(f.maintenanceHits*-15, -30)
	}},
	{"no_numbers", func(f features, _ Context) int {
		if !f.hasDigit {
			return -10
		}
		return 0
	}},
}
