package scoring

import (
	"math"
	"strings"
)

// Overall blend weights per the OKR-set invariant: objective 40%, mean key
// result 40%, coherence 10%, completeness 5%, balance 2.5%, achievability
// 2.5%.
const (
	blendObjective     = 0.40
	blendKeyResults    = 0.40
	blendCoherence     = 0.10
	blendCompleteness  = 0.05
	blendBalance       = 0.025
	blendAchievability = 0.025
)

// Combine blends one objective score and its key-result scores into an
// OKR-set level score. The key-result texts are consulted only for the
// coherence heuristic.
func Combine(obj ObjectiveScore, objectiveText string, krs []KeyResultScore, krTexts []string) OverallScore {
	coherence := scoreCoherence(objectiveText, krTexts)
	completeness := scoreCompleteness(len(krs))
	balance := scoreBalance(krs)
	achievability := scoreAchievability(krs)

	meanKR := 0.0
	for _, kr := range krs {
		meanKR += float64(kr.Overall)
	}
	if len(krs) > 0 {
		meanKR /= float64(len(krs))
	}

	score := clamp(int(math.Round(
		blendObjective*float64(obj.Overall) +
			blendKeyResults*meanKR +
			blendCoherence*float64(coherence) +
			blendCompleteness*float64(completeness) +
			blendBalance*float64(balance) +
			blendAchievability*float64(achievability))))

	return OverallScore{
		Score:         score,
		Coherence:     coherence,
		Completeness:  completeness,
		Balance:       balance,
		Achievability: achievability,
		Level:         LevelFor(score),
	}
}

// scoreCoherence measures how many key results share significant vocabulary
// with the objective. Tokens of four letters or more count.
func scoreCoherence(objectiveText string, krTexts []string) int {
	if len(krTexts) == 0 {
		return 40
	}
	objTokens := significantTokens(objectiveText)
	if len(objTokens) == 0 {
		return 40
	}

	linked := 0
	for _, kr := range krTexts {
		for tok := range significantTokens(kr) {
			if _, ok := objTokens[tok]; ok {
				linked++
				break
			}
		}
	}
	ratio := float64(linked) / float64(len(krTexts))
	return clamp(40 + int(math.Round(50*ratio)))
}

// scoreCompleteness follows the three-to-five key results sweet spot.
func scoreCompleteness(n int) int {
	switch {
	case n == 0:
		return 10
	case n == 1:
		return 40
	case n == 2:
		return 65
	case n <= 5:
		return 90
	default:
		return 55
	}
}

// scoreBalance penalizes a set where one key result is far weaker than the
// rest.
func scoreBalance(krs []KeyResultScore) int {
	if len(krs) < 2 {
		return 50
	}
	lo, hi := krs[0].Overall, krs[0].Overall
	for _, kr := range krs[1:] {
		if kr.Overall < lo {
			lo = kr.Overall
		}
		if kr.Overall > hi {
			hi = kr.Overall
		}
	}
	return clamp(100 - 2*(hi-lo))
}

func scoreAchievability(krs []KeyResultScore) int {
	if len(krs) == 0 {
		return 30
	}
	sum := 0
	for _, kr := range krs {
		sum += kr.Dimensions.Feasibility
	}
	return clamp(sum / len(krs))
}

func significantTokens(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(normalize(text)) {
		if len(tok) >= 4 {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}
