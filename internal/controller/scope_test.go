package controller

import (
	"testing"

	"okrcoach/internal/scoring"
)

func TestDetectObjectiveScope(t *testing.T) {
	cases := []struct {
		text string
		ctx  scoring.Context
		want scoring.Scope
	}{
		{"Become the market leader in enterprise analytics", scoring.Context{}, scoring.ScopeStrategic},
		{"Align all teams on one onboarding flow", scoring.Context{}, scoring.ScopeDepartmental},
		{"Deliver milestone two of the billing project", scoring.Context{}, scoring.ScopeProject},
		{"Run the pricing pilot to a decision", scoring.Context{}, scoring.ScopeInitiative},
		{"Increase trial conversion for our product", scoring.Context{}, scoring.ScopeTeam},
		{"Increase trial conversion for our product", scoring.Context{CrossFunctional: true}, scoring.ScopeDepartmental},
		// Strategic language wins over project vocabulary in the same text.
		{"Deliver the project that makes us the market leader", scoring.Context{}, scoring.ScopeStrategic},
		{"", scoring.Context{}, scoring.ScopeTeam},
	}
	for _, tc := range cases {
		if got := DetectObjectiveScope(tc.text, tc.ctx); got != tc.want {
			t.Fatalf("scope of %q = %q, want %q", tc.text, got, tc.want)
		}
	}
}
