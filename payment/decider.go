package payment

import "math/rand"

// DefaultSuccessRate is the share of simulated payments that are approved.
const DefaultSuccessRate = 0.9

// Decider settles the outcome of a simulated charge.
type Decider interface {
	Approve() bool
}

// RandomDecider approves with probability Rate using an unweighted draw.
type RandomDecider struct {
	Rate float64
}

func (d RandomDecider) Approve() bool {
	return rand.Float64() < d.Rate
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func() bool

func (f DeciderFunc) Approve() bool { return f() }

// Always returns a Decider with a fixed outcome.
func Always(approve bool) Decider {
	return DeciderFunc(func() bool { return approve })
}
