package scoring

// Level buckets an overall score for presentation.
type Level string

const (
	LevelExcellent  Level = "excellent"
	LevelGood       Level = "good"
	LevelAcceptable Level = "acceptable"
	LevelNeedsWork  Level = "needs_work"
	LevelPoor       Level = "poor"
)

// LevelFor derives the level purely from an overall score.
func LevelFor(overall int) Level {
	switch {
	case overall >= 85:
		return LevelExcellent
	case overall >= 70:
		return LevelGood
	case overall >= 55:
		return LevelAcceptable
	case overall >= 35:
		return LevelNeedsWork
	default:
		return LevelPoor
	}
}

// Context carries optional free-form session context. Missing fields simply
// disable the bonuses that would consult them.
type Context struct {
	Industry        string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Function        string `json:"function,omitempty" yaml:"function,omitempty"`
	Timeframe       string `json:"timeframe,omitempty" yaml:"timeframe,omitempty"`
	TeamSize        int    `json:"team_size,omitempty" yaml:"team_size,omitempty"`
	CrossFunctional bool   `json:"cross_functional,omitempty" yaml:"cross_functional,omitempty"`
}

// Scope is the organizational level an objective is expected to occupy.
type Scope string

const (
	ScopeStrategic    Scope = "strategic"
	ScopeDepartmental Scope = "departmental"
	ScopeTeam         Scope = "team"
	ScopeInitiative   Scope = "initiative"
	ScopeProject      Scope = "project"
)

// ObjectiveDimensions are the weighted quality axes for an objective.
type ObjectiveDimensions struct {
	OutcomeOrientation   int `json:"outcome_orientation"`
	Inspiration          int `json:"inspiration"`
	Clarity              int `json:"clarity"`
	Alignment            int `json:"alignment"`
	Ambition             int `json:"ambition"`
	ScopeAppropriateness int `json:"scope_appropriateness"`
}

// ObjectiveScore is the full scoring result for one objective string.
// Instances are created fresh per call and never mutated.
type ObjectiveScore struct {
	Overall      int                 `json:"overall"`
	Dimensions   ObjectiveDimensions `json:"dimensions"`
	Feedback     []string            `json:"feedback"`
	Improvements []string            `json:"improvements"`
	Level        Level               `json:"level"`
}

// KeyResultDimensions are the weighted quality axes for a key result.
type KeyResultDimensions struct {
	Quantification    int `json:"quantification"`
	OutcomeVsActivity int `json:"outcome_vs_activity"`
	Feasibility       int `json:"feasibility"`
	Independence      int `json:"independence"`
	Challenge         int `json:"challenge"`
}

// KeyResultScore is the full scoring result for one key-result string.
type KeyResultScore struct {
	Overall      int                 `json:"overall"`
	Dimensions   KeyResultDimensions `json:"dimensions"`
	Feedback     []string            `json:"feedback"`
	Improvements []string            `json:"improvements"`
	Level        Level               `json:"level"`
}

// OverallScore blends one objective and its key results into an OKR-set score.
type OverallScore struct {
	Score         int   `json:"score"`
	Coherence     int   `json:"coherence"`
	Completeness  int   `json:"completeness"`
	Balance       int   `json:"balance"`
	Achievability int   `json:"achievability"`
	Level         Level `json:"level"`
}

// Objective dimension weights. They sum to 1.0.
const (
	weightOutcome   = 0.28
	weightInspire   = 0.18
	weightClarity   = 0.14
	weightAlignment = 0.14
	weightAmbition  = 0.16
	weightScope     = 0.10
)

// Key-result dimension weights. They sum to 1.0.
const (
	weightQuantification = 0.25
	weightOutcomeVsAct   = 0.30
	weightFeasibility    = 0.15
	weightIndependence   = 0.15
	weightChallenge      = 0.15
)

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
