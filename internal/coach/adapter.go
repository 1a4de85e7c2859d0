// Package coach is the boundary to the external language model that writes
// the conversational replies. The decision engine never generates prose; it
// hands the adapter its verdicts and receives text back.
package coach

import "context"

// Adapter produces one coaching reply per turn.
type Adapter interface {
	Name() string
	Reply(ctx context.Context, req Request) (*Reply, error)
}

// Request carries everything the reply generator may draw on for one turn.
type Request struct {
	Phase        string
	Objective    string
	KeyResults   []string
	UserMessage  string
	Strategy     string
	Feedback     []string
	Improvements []string
	Reframe      string
}

// Reply is the generated coaching message.
type Reply struct {
	Text string
}
