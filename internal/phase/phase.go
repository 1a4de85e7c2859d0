// Package phase defines the five-stage coaching conversation lifecycle and
// validates transitions through it. Phases are strictly ordered and the
// state machine is forward-only; completed is terminal.
package phase

import "fmt"

// Phase is one stage of the coaching conversation. The string values are a
// closed wire vocabulary; dependent tooling relies on these exact tokens.
type Phase string

const (
	Discovery   Phase = "discovery"
	Refinement  Phase = "refinement"
	KRDiscovery Phase = "kr_discovery"
	Validation  Phase = "validation"
	Completed   Phase = "completed"
)

// order gives the strict total order over phases.
var order = map[Phase]int{
	Discovery:   0,
	Refinement:  1,
	KRDiscovery: 2,
	Validation:  3,
	Completed:   4,
}

// All lists the phases in order.
func All() []Phase {
	return []Phase{Discovery, Refinement, KRDiscovery, Validation, Completed}
}

// Parse validates a wire token into a Phase.
func Parse(value string) (Phase, error) {
	p := Phase(value)
	if _, ok := order[p]; !ok {
		return "", fmt.Errorf("invalid phase %q (expected discovery, refinement, kr_discovery, validation, or completed)", value)
	}
	return p, nil
}

// Known reports whether p is a member of the phase vocabulary.
func (p Phase) Known() bool {
	_, ok := order[p]
	return ok
}

// Rank returns the position of p in the total order, with unknown phases
// ranked below discovery.
func (p Phase) Rank() int {
	r, ok := order[p]
	if !ok {
		return -1
	}
	return r
}

// Next returns the phase after p, or p itself when p is terminal or
// unknown.
func (p Phase) Next() Phase {
	switch p {
	case Discovery:
		return Refinement
	case Refinement:
		return KRDiscovery
	case KRDiscovery:
		return Validation
	case Validation:
		return Completed
	default:
		return p
	}
}

func (p Phase) String() string {
	return string(p)
}
