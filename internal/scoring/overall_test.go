package scoring

import "testing"

func TestCombineLinkedSet(t *testing.T) {
	objectiveText := "Increase monthly recurring revenue by 35% through improved customer retention and new customer acquisition"
	krTexts := []string{
		"Increase NPS from 40 to 60 by Q3",
		"Improve customer retention rate from 80% to 90%",
	}

	obj := scoreObjective(objectiveText, Context{}, ScopeTeam)
	var krs []KeyResultScore
	for _, text := range krTexts {
		krs = append(krs, scoreKeyResult(text, Context{}))
	}

	overall := Combine(obj, objectiveText, krs, krTexts)

	if got, want := overall.Coherence, 90; got != want {
		t.Fatalf("coherence = %d, want %d", got, want)
	}
	if got, want := overall.Completeness, 65; got != want {
		t.Fatalf("completeness = %d, want %d", got, want)
	}
	if got, want := overall.Balance, 98; got != want {
		t.Fatalf("balance = %d, want %d", got, want)
	}
	if got, want := overall.Achievability, 70; got != want {
		t.Fatalf("achievability = %d, want %d", got, want)
	}
	if got, want := overall.Score, 76; got != want {
		t.Fatalf("score = %d, want %d", got, want)
	}
	if got, want := overall.Level, LevelGood; got != want {
		t.Fatalf("level = %q, want %q", got, want)
	}
}

func TestCombineNoKeyResults(t *testing.T) {
	obj := scoreObjective("Increase revenue by 20%", Context{}, ScopeTeam)
	overall := Combine(obj, "Increase revenue by 20%", nil, nil)

	if got, want := overall.Completeness, 10; got != want {
		t.Fatalf("completeness = %d, want %d", got, want)
	}
	if got, want := overall.Achievability, 30; got != want {
		t.Fatalf("achievability = %d, want %d", got, want)
	}
	if got, want := overall.Coherence, 40; got != want {
		t.Fatalf("coherence = %d, want %d", got, want)
	}
}

func TestCombineUnlinkedKeyResults(t *testing.T) {
	objectiveText := "Increase monthly recurring revenue by 35%"
	linked := []string{"Grow recurring revenue from $1M to $2M"}
	unlinked := []string{"Ship the mobile app"}

	obj := scoreObjective(objectiveText, Context{}, ScopeTeam)

	withLink := Combine(obj, objectiveText,
		[]KeyResultScore{scoreKeyResult(linked[0], Context{})}, linked)
	withoutLink := Combine(obj, objectiveText,
		[]KeyResultScore{scoreKeyResult(unlinked[0], Context{})}, unlinked)

	if withLink.Coherence <= withoutLink.Coherence {
		t.Fatalf("linked coherence %d should exceed unlinked %d",
			withLink.Coherence, withoutLink.Coherence)
	}
}

func TestScoreCoherenceSharedTokens(t *testing.T) {
	cases := []struct {
		objective string
		krs       []string
		want      int
	}{
		{"Expand enterprise revenue", []string{"Grow enterprise pipeline", "Ship the mobile app"}, 65},
		{"Expand enterprise revenue", []string{"Grow enterprise pipeline", "Increase enterprise deals"}, 90},
		{"Expand enterprise revenue", []string{"Ship the mobile app"}, 40},
		{"Expand enterprise revenue", nil, 40},
	}
	for _, tc := range cases {
		if got := scoreCoherence(tc.objective, tc.krs); got != tc.want {
			t.Fatalf("scoreCoherence(%q, %v) = %d, want %d", tc.objective, tc.krs, got, tc.want)
		}
	}
}

func TestScoreCompleteness(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 10}, {1, 40}, {2, 65}, {3, 90}, {4, 90}, {5, 90}, {6, 55}, {9, 55},
	}
	for _, tc := range cases {
		if got := scoreCompleteness(tc.n); got != tc.want {
			t.Fatalf("scoreCompleteness(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestScoreBalanceSpread(t *testing.T) {
	even := []KeyResultScore{{Overall: 70}, {Overall: 72}}
	skewed := []KeyResultScore{{Overall: 90}, {Overall: 30}}

	if got, want := scoreBalance(even), 96; got != want {
		t.Fatalf("even balance = %d, want %d", got, want)
	}
	if got, want := scoreBalance(skewed), 0; got != want {
		t.Fatalf("skewed balance = %d, want %d", got, want)
	}
	if got, want := scoreBalance(nil), 50; got != want {
		t.Fatalf("balance of empty set = %d, want %d", got, want)
	}
}
