package scoring

// ScopeIndicators are intermediate booleans describing the organizational
// level of the language in an objective. They are consumed by the scope
// fit rules and by scope detection; they are not part of any score payload.
type ScopeIndicators struct {
	StrategicLanguage  bool
	CrossFunctional    bool
	ProjectLanguage    bool
	InitiativeLanguage bool
	TeamControllable   bool
}

var strategicPhrases = []string{
	"market leader", "market leadership", "market share", "industry",
	"company wide", "enterprise wide", "global", "competitive position",
	"market positioning", "category", "become the",
}

var crossFunctionalPhrases = []string{
	"cross functional", "departments", "organization wide", "org wide",
	"across teams", "every team", "all teams", "company",
}

var projectPhrases = []string{
	"milestone", "milestones", "project", "deliverable", "deliverables",
	"rollout plan", "phase one", "phase two",
}

var initiativePhrases = []string{
	"initiative", "pilot", "experiment", "program",
}

// DetectScopeIndicators derives scope indicators from text plus optional
// team context. Empty text yields all-false indicators except
// TeamControllable, which defaults to true when nothing contradicts it.
func DetectScopeIndicators(text string, ctx Context) ScopeIndicators {
	f := extractFeatures(text)
	return detectIndicators(f, ctx)
}

func detectIndicators(f features, ctx Context) ScopeIndicators {
	ind := ScopeIndicators{
		StrategicLanguage:  hasHit(f.padded, strategicPhrases),
		CrossFunctional:    hasHit(f.padded, crossFunctionalPhrases) || ctx.CrossFunctional,
		ProjectLanguage:    hasHit(f.padded, projectPhrases),
		InitiativeLanguage: hasHit(f.padded, initiativePhrases),
	}
	ind.TeamControllable = !ind.StrategicLanguage && !ind.CrossFunctional
	return ind
}

// scoreScopeFit rewards objectives whose language matches the scope they
// are supposed to occupy and penalizes mismatches, e.g. a team objective
// written in company-wide strategic terms.
func scoreScopeFit(f features, ctx Context, scope Scope) int {
	ind := detectIndicators(f, ctx)
	score := 60

	switch scope {
	case ScopeStrategic:
		if ind.StrategicLanguage {
			score += 20
		}
		if ind.CrossFunctional {
			score += 10
		}
		if !ind.StrategicLanguage && !ind.CrossFunctional && f.words > 0 {
			score -= 15
		}
	case ScopeDepartmental:
		if ind.CrossFunctional {
			score += 15
		}
		if ind.StrategicLanguage {
			score += 10
		}
		if !ind.CrossFunctional && !ind.StrategicLanguage {
			score -= 10
		}
	default: // team, initiative, project
		if ind.TeamControllable {
			score += 15
		}
		if ind.StrategicLanguage {
			score -= 15
		}
		if ind.CrossFunctional {
			score -= 10
		}
	}

	return clamp(score)
}
