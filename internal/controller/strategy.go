package controller

import "strings"

// Strategy is the coaching posture chosen for the next turn.
type Strategy string

const (
	DirectCoaching       Strategy = "direct_coaching"
	GentleGuidance       Strategy = "gentle_guidance"
	DiscoveryExploration Strategy = "discovery_exploration"
)

var negationPhrases = []string{
	"no", "not", "don't", "dont", "won't", "wont", "can't", "cant",
	"never", "disagree", "that's wrong", "thats wrong",
}

var hedgingPhrases = []string{
	"maybe", "perhaps", "i guess", "not sure", "i think", "possibly",
	"kind of", "sort of", "i suppose", "probably",
}

// Thresholds for lexical posture classification, measured over the recent
// user messages.
const (
	strategyWindow       = 5
	minEngagedWords      = 4
	negationDensityLimit = 0.08
	hedgingDensityLimit  = 0.10
)

// DetermineConversationStrategy classifies the user's posture from their
// recent messages: pushback selects gentle guidance, heavy hedging or very
// short replies select open exploration, and everything else gets direct
// coaching.
func DetermineConversationStrategy(state TurnState) Strategy {
	messages := state.RecentUserMessages
	if len(messages) > strategyWindow {
		messages = messages[len(messages)-strategyWindow:]
	}
	if len(messages) == 0 {
		return DiscoveryExploration
	}

	totalWords := 0
	negations := 0
	hedges := 0
	for _, msg := range messages {
		padded := " " + strings.Join(strings.Fields(strings.ToLower(msg)), " ") + " "
		totalWords += len(strings.Fields(msg))
		for _, p := range negationPhrases {
			negations += strings.Count(padded, " "+p+" ")
		}
		for _, p := range hedgingPhrases {
			hedges += strings.Count(padded, " "+p+" ")
		}
	}
	if totalWords == 0 {
		return DiscoveryExploration
	}

	meanWords := totalWords / len(messages)
	negationDensity := float64(negations) / float64(totalWords)
	hedgingDensity := float64(hedges) / float64(totalWords)

	switch {
	case negationDensity > negationDensityLimit:
		return GentleGuidance
	case hedgingDensity > hedgingDensityLimit || meanWords < minEngagedWords:
		return DiscoveryExploration
	default:
		return DirectCoaching
	}
}
