// Package routing decides where a customer goes after completing service at
// a node, or on entering the network.
//
// Node numbering follows the network convention: service nodes are numbered
// 1..N and destination 0 means leaving the network.
package routing

import (
	"errors"
	"math/rand"
)

// ExitNode is the destination that represents leaving the network.
const ExitNode = 0

// A StateObserver exposes the live occupancy of the network, so that
// state-dependent policies such as join-shortest-queue can inspect it.
type StateObserver interface {
	// NumNodes returns the number of service nodes in the network.
	NumNodes() int

	// Population returns the number of individuals present at a node,
	// including those in service.
	Population(node int) int
}

// A Router picks the next node for an individual that finished service at
// (or arrived to) a node.
type Router interface {
	// NextNode returns the destination node number. fromNode is the node the
	// individual is leaving; state exposes the current network occupancy;
	// rng is the simulation's routing stream.
	NextNode(fromNode int, state StateObserver, rng *rand.Rand) int
}

// Probabilistic routes according to a row of routing probabilities. Entry i
// of the row is the probability of moving to node i+1. Any residual
// probability mass means leaving the network.
type Probabilistic struct {
	cumul []float64
}

// NewProbabilistic creates a Probabilistic router. The probabilities must be
// substochastic: non-negative with a sum of at most one.
func NewProbabilistic(probs []float64) (Probabilistic, error) {
	total := 0.0
	cumul := make([]float64, len(probs))
	for i, p := range probs {
		if p < 0 || p > 1 {
			return Probabilistic{}, errors.New(
				"routing probabilities must be between 0 and 1")
		}

		total += p
		cumul[i] = total
	}

	if total > 1+1e-9 {
		return Probabilistic{}, errors.New(
			"routing probabilities must sum to at most 1")
	}

	return Probabilistic{cumul: cumul}, nil
}

// NextNode picks a destination according to the routing probabilities.
func (r Probabilistic) NextNode(
	_ int,
	_ StateObserver,
	rng *rand.Rand,
) int {
	u := rng.Float64()
	for i, c := range r.cumul {
		if u < c {
			return i + 1
		}
	}

	return ExitNode
}

// Destinations returns the nodes the router can route to. Network validation
// uses it to check routes statically.
func (r Probabilistic) Destinations() []int {
	dests := make([]int, len(r.cumul))
	for i := range r.cumul {
		dests[i] = i + 1
	}

	return dests
}

// Direct always routes to a fixed node.
type Direct struct {
	to int
}

// NewDirect creates a Direct router towards the given node number.
func NewDirect(to int) (Direct, error) {
	if to < 1 {
		return Direct{}, errors.New("direct destination must be a service node")
	}

	return Direct{to: to}, nil
}

// NextNode returns the fixed destination.
func (r Direct) NextNode(_ int, _ StateObserver, _ *rand.Rand) int {
	return r.to
}

// Destinations returns the fixed destination for static route checking.
func (r Direct) Destinations() []int {
	return []int{r.to}
}

// Exit always routes out of the network.
type Exit struct{}

// NextNode returns the exit destination.
func (r Exit) NextNode(_ int, _ StateObserver, _ *rand.Rand) int {
	return ExitNode
}

// Func adapts a plain function into a Router, for user-supplied policies.
type Func func(fromNode int, state StateObserver, rng *rand.Rand) int

// NextNode calls the wrapped function.
func (f Func) NextNode(fromNode int, state StateObserver, rng *rand.Rand) int {
	return f(fromNode, state, rng)
}
