package routing

import (
	"errors"
	"math/rand"
	"sort"
)

// JoinShortestQueue routes to the candidate node holding the fewest
// individuals. Ties break towards the lowest-numbered candidate, so a run
// with a fixed seed always produces the same path.
type JoinShortestQueue struct {
	candidates []int
}

// NewJoinShortestQueue creates a JoinShortestQueue router over the given
// candidate nodes. The candidate list is kept in ascending order to make the
// tie-break rule explicit.
func NewJoinShortestQueue(candidates []int) (JoinShortestQueue, error) {
	if len(candidates) == 0 {
		return JoinShortestQueue{}, errors.New(
			"join-shortest-queue needs at least one candidate node")
	}

	sorted := make([]int, len(candidates))
	copy(sorted, candidates)
	sort.Ints(sorted)

	for i, c := range sorted {
		if c < 1 {
			return JoinShortestQueue{}, errors.New(
				"join-shortest-queue candidates must be service nodes")
		}
		if i > 0 && sorted[i] == sorted[i-1] {
			return JoinShortestQueue{}, errors.New(
				"join-shortest-queue candidates must be distinct")
		}
	}

	return JoinShortestQueue{candidates: sorted}, nil
}

// NextNode returns the least busy candidate.
func (r JoinShortestQueue) NextNode(
	_ int,
	state StateObserver,
	_ *rand.Rand,
) int {
	best := r.candidates[0]
	bestPop := state.Population(best)

	for _, c := range r.candidates[1:] {
		if pop := state.Population(c); pop < bestPop {
			best = c
			bestPop = pop
		}
	}

	return best
}

// Destinations returns the candidate nodes for static route checking.
func (r JoinShortestQueue) Destinations() []int {
	return r.candidates
}
