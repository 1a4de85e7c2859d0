// Package export renders a coached session as a YAML OKR document, the
// shape teams keep in an okrs/ directory or paste into a planning doc.
package export

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"okrcoach/internal/controller"
	"okrcoach/internal/scoring"
	"okrcoach/internal/session"
)

// ErrNothingToExport is returned when the session has no objective yet.
var ErrNothingToExport = fmt.Errorf("session has no objective to export")

// Document is the exported OKR set.
type Document struct {
	Objective  string   `yaml:"objective"`
	KeyResults []string `yaml:"key_results,omitempty"`
	Phase      string   `yaml:"phase"`
	Quality    Quality  `yaml:"quality"`
	ExportedAt string   `yaml:"exported_at"`
}

// Quality summarizes the engine's scores for the exported set.
type Quality struct {
	Objective  int    `yaml:"objective"`
	KeyResults []int  `yaml:"key_results,omitempty"`
	Overall    int    `yaml:"overall"`
	Level      string `yaml:"level"`
}

// Build scores the session's current objective and key results and
// assembles the document. The timestamp is UTC.
func Build(sess *session.Session, scorer *scoring.Scorer, now time.Time) (Document, error) {
	if sess.Objective == "" {
		return Document{}, ErrNothingToExport
	}

	scope := controller.DetectObjectiveScope(sess.Objective, sess.Context)
	objScore := scorer.ScoreObjective(sess.Objective, sess.Context, scope)

	var krScores []scoring.KeyResultScore
	var krOveralls []int
	for _, kr := range sess.KeyResults {
		s := scorer.ScoreKeyResult(kr, sess.Context)
		krScores = append(krScores, s)
		krOveralls = append(krOveralls, s.Overall)
	}

	overall := scoring.Combine(objScore, sess.Objective, krScores, sess.KeyResults)

	return Document{
		Objective:  sess.Objective,
		KeyResults: sess.KeyResults,
		Phase:      string(sess.Phase),
		Quality: Quality{
			Objective:  objScore.Overall,
			KeyResults: krOveralls,
			Overall:    overall.Score,
			Level:      string(overall.Level),
		},
		ExportedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

// Render marshals the document to YAML.
func Render(doc Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal OKR document: %w", err)
	}
	return out, nil
}
