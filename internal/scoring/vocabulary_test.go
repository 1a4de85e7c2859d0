package scoring

import "testing"

func TestDateReferenceDetection(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Ship onboarding improvements by Q3", true},
		{"Reach $2M ARR by May 2026", true},
		{"Launch the partner program in May", true},
		{"Close the migration before May", true},
		{"Hit 95% uptime by end of quarter", true},
		{"We may improve churn this cycle", false},
		{"The team may exceed the target", false},
		{"Improve retention", false},
	}
	for _, tc := range cases {
		if got := extractFeatures(tc.text).hasDateRef; got != tc.want {
			t.Fatalf("hasDateRef(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
