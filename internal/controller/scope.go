package controller

import "okrcoach/internal/scoring"

// DetectObjectiveScope classifies the organizational level an objective's
// language occupies, feeding the scorer's scope parameter. Context wins
// over text where it is explicit (a cross-functional team writes
// departmental objectives even in plain words).
func DetectObjectiveScope(text string, ctx scoring.Context) scoring.Scope {
	ind := scoring.DetectScopeIndicators(text, ctx)

	switch {
	case ind.StrategicLanguage:
		return scoring.ScopeStrategic
	case ind.CrossFunctional:
		return scoring.ScopeDepartmental
	case ind.ProjectLanguage:
		return scoring.ScopeProject
	case ind.InitiativeLanguage:
		return scoring.ScopeInitiative
	default:
		return scoring.ScopeTeam
	}
}
