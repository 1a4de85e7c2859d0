// Package antipattern scans objective and key-result text for recurring
// goal-setting failure modes and proposes reframing guidance. Detectors are
// independent; each produces a confidence in [0,1] and the result lists
// findings in fixed detector order.
package antipattern

import (
	"regexp"
	"strings"
)

// PatternType identifies one known goal-setting failure mode.
type PatternType string

const (
	ActivityFocused PatternType = "activity_focused"
	BinaryThinking  PatternType = "binary_thinking"
	VanityMetrics   PatternType = "vanity_metrics"
	KitchenSink     PatternType = "kitchen_sink"
	VagueOutcome    PatternType = "vague_outcome"
	BusinessAsUsual PatternType = "business_as_usual"
)

// ActivationThreshold is the confidence a finding must exceed before it
// drives a reframing suggestion.
const ActivationThreshold = 0.5

// Finding is one detected pattern with its confidence.
type Finding struct {
	Type       PatternType `json:"type"`
	Confidence float64     `json:"confidence"`
}

// Result is the output of one detection pass.
type Result struct {
	Patterns []Finding `json:"patterns"`
}

// Strongest returns the highest-confidence finding, or false when the pass
// found nothing.
func (r Result) Strongest() (Finding, bool) {
	var best Finding
	found := false
	for _, f := range r.Patterns {
		if !found || f.Confidence > best.Confidence {
			best = f
			found = true
		}
	}
	return best, found
}

var activityVerbs = []string{
	"launch", "launched", "implement", "implemented", "build", "built",
	"create", "created", "develop", "developed", "deliver", "delivered",
	"conduct", "execute", "organize", "install", "deploy", "migrate",
	"hire", "train", "publish", "release", "set up", "roll out", "write",
}

var outcomeVerbs = []string{
	"increase", "increased", "grow", "growing", "improve", "improved",
	"reduce", "reduced", "decrease", "decreased", "accelerate",
	"accelerated", "boost", "expand", "strengthen", "double", "triple",
	"raise", "lift",
}

var goalClauseVerbs = []string{
	"optimize", "enhance", "streamline", "maximize", "minimize", "achieve",
}

var completionVerbs = []string{
	"complete", "completed", "finish", "finished", "finalize", "finalized",
	"successfully", "done", "go live", "sign off",
}

var vanityPhrases = []string{
	"followers", "likes", "views", "impressions", "page views",
	"app downloads", "social media mentions",
}

var businessOutcomePhrases = []string{
	"revenue", "retention", "conversion", "churn", "profit", "margin",
	"customer", "customers", "pipeline", "arr", "mrr",
}

var vaguePhrases = []string{
	"better", "some", "various", "stuff", "things", "nice", "good",
	"somehow", "try to", "kind of", "a bit", "as much as possible",
	"work on",
}

var maintenancePhrases = []string{
	"maintain", "maintained", "continue", "continued", "sustain",
	"sustained", "keep up", "steady", "ongoing", "business as usual",
}

var stretchPhrases = []string{
	"transform", "dominate", "revolutionize", "breakthrough", "redefine",
	"double", "triple", "ambitious", "bold",
}

var (
	reDigit   = regexp.MustCompile(`[0-9]`)
	rePercent = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?\s*(?:%|percent\b)`)
	reFromTo  = regexp.MustCompile(`\bfrom\s+\S+\s+to\s+\S+`)
	reSpaces  = regexp.MustCompile(`\s+`)
	rePunct   = regexp.MustCompile(`[^a-z0-9%$\s,;]`)
)

// detector is one independent pattern check. A zero confidence means the
// pattern did not fire and no finding is emitted.
type detector struct {
	pattern PatternType
	check   func(in input) float64
}

type input struct {
	padded     string
	segments   []string
	measurable bool
}

// detectors run in this fixed order; Result preserves it.
var detectors = []detector{
	{ActivityFocused, detectActivityFocused},
	{BinaryThinking, detectBinaryThinking},
	{VanityMetrics, detectVanityMetrics},
	{KitchenSink, detectKitchenSink},
	{VagueOutcome, detectVagueOutcome},
	{BusinessAsUsual, detectBusinessAsUsual},
}

// Detect runs every pattern detector over the text. It is a total function:
// any input produces a (possibly empty) result.
func Detect(text string) Result {
	in := buildInput(text)
	var findings []Finding
	for _, d := range detectors {
		if conf := d.check(in); conf > 0 {
			findings = append(findings, Finding{Type: d.pattern, Confidence: conf})
		}
	}
	return Result{Patterns: findings}
}

func buildInput(text string) input {
	lower := strings.ToLower(text)
	cleaned := rePunct.ReplaceAllString(strings.ReplaceAll(lower, "-", " "), " ")
	padded := " " + strings.TrimSpace(reSpaces.ReplaceAllString(strings.ReplaceAll(strings.ReplaceAll(cleaned, ",", " "), ";", " "), " ")) + " "

	return input{
		padded:     padded,
		segments:   splitGoalClauses(cleaned),
		measurable: reDigit.MatchString(lower) || rePercent.MatchString(lower) || reFromTo.MatchString(lower),
	}
}

// splitGoalClauses breaks text on the conjunctions that chain goals
// together so the kitchen-sink detector can count them.
func splitGoalClauses(cleaned string) []string {
	replaced := cleaned
	for _, sep := range []string{",", ";", " and ", " plus ", " while "} {
		replaced = strings.ReplaceAll(replaced, sep, "\n")
	}
	var segments []string
	for _, part := range strings.Split(replaced, "\n") {
		part = strings.TrimSpace(reSpaces.ReplaceAllString(part, " "))
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func hitCount(padded string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			n++
		}
	}
	return n
}

func capConf(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

// detectActivityFocused fires when the text is built from task verbs with
// no outcome framing. A measurable target softens the call.
func detectActivityFocused(in input) float64 {
	activities := hitCount(in.padded, activityVerbs)
	if activities == 0 || hitCount(in.padded, outcomeVerbs) > 0 {
		return 0
	}
	conf := 0.4 + 0.15*float64(activities)
	if in.measurable {
		conf -= 0.2
	}
	return capConf(conf, 0.9)
}

// detectBinaryThinking fires on done/not-done framing with no continuous
// target to measure against.
func detectBinaryThinking(in input) float64 {
	completions := hitCount(in.padded, completionVerbs)
	if completions == 0 || in.measurable {
		return 0
	}
	return capConf(0.45+0.15*float64(completions), 0.85)
}

// detectVanityMetrics fires on follower/view/like language that is not tied
// to a business outcome.
func detectVanityMetrics(in input) float64 {
	vanity := hitCount(in.padded, vanityPhrases)
	if vanity == 0 {
		return 0
	}
	if hitCount(in.padded, businessOutcomePhrases) > 0 {
		return 0.3
	}
	return capConf(0.5+0.15*float64(vanity), 0.9)
}

// detectKitchenSink counts distinct goal clauses chained by conjunctions.
func detectKitchenSink(in input) float64 {
	clauses := 0
	for _, seg := range in.segments {
		if clauseStartsWithGoalVerb(seg) {
			clauses++
		}
	}
	if clauses < 3 {
		return 0
	}
	return capConf(0.35+0.15*float64(clauses-2), 0.95)
}

func clauseStartsWithGoalVerb(segment string) bool {
	fields := strings.Fields(segment)
	limit := 3
	if len(fields) < limit {
		limit = len(fields)
	}
	for i := 0; i < limit; i++ {
		w := fields[i]
		for _, list := range [][]string{outcomeVerbs, activityVerbs, goalClauseVerbs} {
			for _, v := range list {
				if w == v {
					return true
				}
			}
		}
	}
	return false
}

// detectVagueOutcome fires on filler wording with nothing measurable
// backing it up.
func detectVagueOutcome(in input) float64 {
	vague := hitCount(in.padded, vaguePhrases)
	if vague == 0 || in.measurable {
		return 0
	}
	return capConf(0.35+0.15*float64(vague), 0.8)
}

// detectBusinessAsUsual fires on maintenance vocabulary with no stretch
// language anywhere in the text.
func detectBusinessAsUsual(in input) float64 {
	maintenance := hitCount(in.padded, maintenancePhrases)
	if maintenance == 0 {
		return 0
	}
	if hitCount(in.padded, stretchPhrases) > 0 || rePercent.MatchString(in.padded) {
		return 0
	}
	return capConf(0.5+0.15*float64(maintenance), 0.85)
}
