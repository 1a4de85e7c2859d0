package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
	"okrcoach/internal/session"
)

func TestBuildScoresTheSession(t *testing.T) {
	sess := &session.Session{
		ID:        "s1",
		Phase:     phase.Completed,
		Objective: "Increase monthly recurring revenue by 35% through improved customer retention and new customer acquisition",
		KeyResults: []string{
			"Increase NPS from 40 to 60 by Q3",
			"Improve customer retention rate from 80% to 90%",
		},
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	doc, err := Build(sess, scoring.New(nil), now)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := doc.Phase, "completed"; got != want {
		t.Fatalf("phase = %q, want %q", got, want)
	}
	if got, want := doc.Quality.Objective, 74; got != want {
		t.Fatalf("objective quality = %d, want %d", got, want)
	}
	if got, want := doc.Quality.KeyResults, []int{75, 76}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("key result quality = %v, want %v", got, want)
	}
	if got, want := doc.Quality.Overall, 76; got != want {
		t.Fatalf("overall quality = %d, want %d", got, want)
	}
	if got, want := doc.Quality.Level, "good"; got != want {
		t.Fatalf("level = %q, want %q", got, want)
	}
	if got, want := doc.ExportedAt, "2026-03-01T12:00:00Z"; got != want {
		t.Fatalf("exported_at = %q, want %q", got, want)
	}
}

func TestBuildWithoutObjective(t *testing.T) {
	sess := &session.Session{ID: "s2", Phase: phase.Discovery}
	_, err := Build(sess, scoring.New(nil), time.Now())
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("err = %v, want ErrNothingToExport", err)
	}
}

func TestRenderRoundTrips(t *testing.T) {
	doc := Document{
		Objective:  "Increase NPS from 40 to 60",
		KeyResults: []string{"Increase NPS from 40 to 60 by Q3"},
		Phase:      "validation",
		Quality:    Quality{Objective: 74, KeyResults: []int{75}, Overall: 76, Level: "good"},
		ExportedAt: "2026-03-01T12:00:00Z",
	}

	out, err := Render(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "objective: Increase NPS from 40 to 60") {
		t.Fatalf("rendered YAML missing objective:\n%s", out)
	}

	var back Document
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if back.Quality.Overall != doc.Quality.Overall || back.Phase != doc.Phase {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
