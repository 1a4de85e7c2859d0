package antipattern

import "fmt"

// Technique names a coaching move used to reframe a flawed goal.
type Technique string

const (
	FiveWhys              Technique = "five_whys"
	OutcomeTransformation Technique = "outcome_transformation"
	ValueExploration      Technique = "value_exploration"
	FocusNarrowing        Technique = "focus_narrowing"
	StretchPrompt         Technique = "stretch_prompt"
)

// Reframe is a suggested coaching move for the strongest detected pattern.
type Reframe struct {
	Technique  Technique `json:"technique"`
	Suggestion string    `json:"suggestion"`
	Confidence float64   `json:"confidence"`
}

// UserProfile captures what the coach has observed about the user so the
// suggestion's register can match them.
type UserProfile struct {
	CommunicationStyle string `json:"communication_style,omitempty"` // "direct" or "supportive"
	Experienced        bool   `json:"experienced,omitempty"`
	ResistanceObserved bool   `json:"resistance_observed,omitempty"`
}

// BuildReframe selects a technique for the strongest finding above the
// activation threshold and fills its suggestion template. Returns nil when
// no pattern fired strongly enough, which keeps the false-positive rate low
// for well-formed objectives.
func BuildReframe(result Result, originalText string, profile UserProfile) *Reframe {
	finding, ok := result.Strongest()
	if !ok || finding.Confidence <= ActivationThreshold {
		return nil
	}

	technique := techniqueFor(finding.Type, profile)
	suggestion := suggestionFor(technique, finding.Type, originalText, profile)

	return &Reframe{
		Technique:  technique,
		Suggestion: suggestion,
		Confidence: finding.Confidence,
	}
}

func techniqueFor(pattern PatternType, profile UserProfile) Technique {
	switch pattern {
	case ActivityFocused:
		// Experienced users go straight to the rewrite; novices get the
		// why-chain first.
		if profile.Experienced {
			return OutcomeTransformation
		}
		return FiveWhys
	case BinaryThinking, VagueOutcome:
		return OutcomeTransformation
	case VanityMetrics:
		return ValueExploration
	case KitchenSink:
		return FocusNarrowing
	case BusinessAsUsual:
		return StretchPrompt
	default:
		return OutcomeTransformation
	}
}

func suggestionFor(technique Technique, pattern PatternType, originalText string, profile UserProfile) string {
	opening := "Let's look at this from another angle."
	if profile.CommunicationStyle == "direct" && !profile.ResistanceObserved {
		opening = "Here's the issue."
	}
	if profile.ResistanceObserved {
		opening = "This is already solid ground to build on."
	}

	switch technique {
	case FiveWhys:
		return fmt.Sprintf("%s You wrote %q. Why does that work matter? And why does that answer matter? Keep asking until you reach a change in the business, then make that change the goal.", opening, originalText)
	case OutcomeTransformation:
		return fmt.Sprintf("%s %q describes the work, not the result. What would be observably different once this succeeds? Write that difference as the goal.", opening, originalText)
	case ValueExploration:
		return fmt.Sprintf("%s The numbers in %q can go up without anyone getting more value. What business result should move when they do? Measure that instead.", opening, originalText)
	case FocusNarrowing:
		return fmt.Sprintf("%s %q is carrying several goals at once. If you could only keep one for the next quarter, which would it be? Start there and let the rest go.", opening, originalText)
	case StretchPrompt:
		return fmt.Sprintf("%s %q protects what you already have. If keeping the lights on were guaranteed, what would you go after? Aim the objective at that.", opening, originalText)
	default:
		return fmt.Sprintf("%s Try restating %q as the outcome it should produce.", opening, originalText)
	}
}
