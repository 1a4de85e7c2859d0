package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// Curated vocabulary lists. Matching is whole-word (the text is normalized
// and space-padded before a contains check), so inflected forms that matter
// are listed explicitly rather than stem-matched.

var outcomeVerbs = []string{
	"increase", "increases", "increased", "increasing",
	"grow", "grows", "growing", "grew",
	"improve", "improves", "improved", "improving",
	"reduce", "reduces", "reduced", "reducing",
	"decrease", "decreases", "decreased",
	"accelerate", "accelerates", "accelerated", "accelerating",
	"boost", "boosted",
	"expand", "expanded",
	"strengthen", "strengthened",
	"double", "doubled", "triple", "tripled",
	"raise", "raised",
	"lift", "lifted",
	"cut costs", "drive up",
}

var activityVerbs = []string{
	"launch", "launched", "launching",
	"implement", "implemented", "implementing",
	"build", "built",
	"create", "created",
	"develop", "developed",
	"deliver", "delivered",
	"conduct", "conducted",
	"execute", "executed",
	"organize", "organized",
	"install", "installed",
	"deploy", "deployed",
	"migrate", "migrated",
	"hire", "hired",
	"train", "trained",
	"publish", "published",
	"release", "released",
	"set up", "roll out", "write", "run",
}

// extraGoalVerbs are verbs that open a goal clause but fit neither the
// outcome nor the activity list cleanly. Used for clause counting.
var extraGoalVerbs = []string{
	"optimize", "enhance", "streamline", "maximize", "minimize", "achieve",
}

var completionVerbs = []string{
	"complete", "completed", "finish", "finished", "finalize", "finalized",
	"successfully", "done", "sign off", "go live",
}

var maintenanceWords = []string{
	"maintain", "maintained", "maintaining",
	"continue", "continued", "continuing",
	"sustain", "sustained",
	"keep up", "steady", "ongoing", "business as usual", "stay the course",
}

var inspirationWords = []string{
	"transform", "transformed", "world class", "best in class", "leading",
	"dominate", "dominating", "revolutionize", "delight", "breakthrough",
	"exceptional", "redefine", "unlock", "empower", "ambitious", "bold",
	"market leading", "category defining",
}

var vagueWords = []string{
	"better", "some", "various", "stuff", "things", "nice", "good",
	"somehow", "etc", "try to", "kind of", "a bit", "more or less",
	"as much as possible", "work on",
}

var valueWords = []string{
	"revenue", "customer", "customers", "retention", "market", "growth",
	"profit", "margin", "satisfaction", "conversion", "churn", "efficiency",
	"quality", "user", "users", "adoption", "engagement", "pipeline",
}

var metricNouns = []string{
	"rate", "score", "nps", "csat", "arr", "mrr", "latency", "uptime",
	"ratio", "percentage", "conversion", "churn", "retention", "margin",
	"cost per", "time to",
}

var vanityWords = []string{
	"followers", "likes", "views", "impressions", "page views",
	"social media mentions", "app downloads",
}

var dependencyPhrases = []string{
	"depends on", "if we", "assuming", "after we", "once we", "blocked by",
	"contingent on",
}

var (
	reDigit      = regexp.MustCompile(`[0-9]`)
	rePercent    = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(?:%|percent\b)`)
	reCurrency   = regexp.MustCompile(`[$€£]|\b(?:usd|eur|gbp)\b`)
	reFromTo     = regexp.MustCompile(`\bfrom\s+\S+\s+to\s+\S+`)
	reMultiplier = regexp.MustCompile(`\b([0-9]+(?:\.[0-9]+)?)x\b`)
	// "may" is both a month and a modal verb; it only counts as a date
	// next to a preposition, day number, or year.
	reDateRef = regexp.MustCompile(`\b(?:q[1-4]|h[12]|20[2-9][0-9]|january|february|march|april|june|july|august|september|october|november|december|eoy|end of (?:year|quarter|month))\b|\b(?:by|in|until|before|during)\s+may\b|\bmay\s+[0-9]`)
	reSpaces  = regexp.MustCompile(`\s+`)
	rePunct   = regexp.MustCompile(`[^a-z0-9%$€£.\s]`)
)

// normalize lowercases, strips punctuation that would break word-boundary
// matching, and collapses whitespace. The result is space-padded so that
// " phrase " contains-checks match whole words only.
func normalize(text string) string {
	t := strings.ToLower(text)
	t = strings.ReplaceAll(t, "-", " ")
	t = rePunct.ReplaceAllString(t, " ")
	t = strings.ReplaceAll(t, ".", " ")
	t = reSpaces.ReplaceAllString(t, " ")
	return " " + strings.TrimSpace(t) + " "
}

// normalizeWord prepares a single context value for vocabulary matching.
func normalizeWord(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func countHits(padded string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			n++
		}
	}
	return n
}

func hasHit(padded string, phrases []string) bool {
	return countHits(padded, phrases) > 0
}

// features holds everything the rule tables consult, extracted once per
// scoring call so every rule sees the same view of the text.
type features struct {
	raw    string
	padded string
	words  int

	hasDigit      bool
	hasPercent    bool
	maxPercent    float64
	hasCurrency   bool
	hasFromTo     bool
	hasDateRef    bool
	hasMultiplier bool
	maxMultiplier float64

	outcomeHits     int
	activityHits    int
	completionHits  int
	maintenanceHits int
	inspirationHits int
	vagueHits       int
	valueHits       int
	metricHits      int
	vanityHits      int
	dependencyHits  int
	andCount        int
}

func extractFeatures(text string) features {
	padded := normalize(text)
	lower := strings.ToLower(text)

	f := features{
		raw:    text,
		padded: padded,
		words:  len(strings.Fields(strings.Trim(padded, " "))),

		hasDigit:    reDigit.MatchString(lower),
		hasCurrency: reCurrency.MatchString(lower),
		hasFromTo:   reFromTo.MatchString(lower),
		hasDateRef:  reDateRef.MatchString(padded),

		outcomeHits:     countHits(padded, outcomeVerbs),
		activityHits:    countHits(padded, activityVerbs),
		completionHits:  countHits(padded, completionVerbs),
		maintenanceHits: countHits(padded, maintenanceWords),
		inspirationHits: countHits(padded, inspirationWords),
		vagueHits:       countHits(padded, vagueWords),
		valueHits:       countHits(padded, valueWords),
		metricHits:      countHits(padded, metricNouns),
		vanityHits:      countHits(padded, vanityWords),
		dependencyHits:  countHits(padded, dependencyPhrases),
		andCount:        strings.Count(padded, " and "),
	}

	for _, m := range rePercent.FindAllStringSubmatch(lower, -1) {
		f.hasPercent = true
		if v, ok := parseFloat(m[1]); ok && v > f.maxPercent {
			f.maxPercent = v
		}
	}
	for _, m := range reMultiplier.FindAllStringSubmatch(lower, -1) {
		f.hasMultiplier = true
		if v, ok := parseFloat(m[1]); ok && v > f.maxMultiplier {
			f.maxMultiplier = v
		}
	}

	return f
}

// measurable reports whether the text carries any structural numeric target.
func (f features) measurable() bool {
	return f.hasDigit || f.hasPercent || f.hasFromTo
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
