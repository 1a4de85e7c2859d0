package coach

import (
	"context"
	"fmt"
	"strings"
)

// MockAdapter is a deterministic, offline reply generator used for tests
// and for running the service without an API key.
type MockAdapter struct{}

func (a *MockAdapter) Name() string {
	return "mock"
}

func (a *MockAdapter) Reply(ctx context.Context, req Request) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	switch req.Phase {
	case "discovery":
		b.WriteString("What outcome would make the next quarter a clear win?")
	case "refinement":
		b.WriteString("Let's sharpen the objective before we measure it.")
	case "kr_discovery":
		b.WriteString("How would you prove this objective was reached? Name a number.")
	case "validation":
		b.WriteString("Let's pressure-test the set before we call it done.")
	case "completed":
		b.WriteString("Congratulations, your OKRs are complete and ready to export.")
	default:
		b.WriteString("Tell me about the goal you have in mind.")
	}

	if req.Reframe != "" {
		b.WriteString(" ")
		b.WriteString(req.Reframe)
	} else if len(req.Feedback) > 0 {
		b.WriteString(fmt.Sprintf(" One thing to look at: %s", strings.ToLower(req.Feedback[0][:1])+req.Feedback[0][1:]))
	}

	return &Reply{Text: b.String()}, nil
}
