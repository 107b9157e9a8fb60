package theory

import (
	"fmt"
	"math"
)

// PSNetworkStateProbability returns the stationary probability of finding
// population state[i] at processor-sharing node i of an open network, for
// per-node utilisations rho[i]. Single-capacity processor-sharing nodes
// have the geometric M/M/1 marginal regardless of the service-time law,
// and the joint distribution is the product of the marginals,
//
//	P(n_1, ..., n_N) = prod_i (1 - rho_i) rho_i^{n_i}.
func PSNetworkStateProbability(rho []float64, state []int) (float64, error) {
	if len(state) != len(rho) {
		return 0, fmt.Errorf(
			"state has %d entries, want %d", len(state), len(rho))
	}

	p := 1.0
	for i, r := range rho {
		if r >= 1 {
			return 0, fmt.Errorf(
				"unstable node %d: utilisation %.3f >= 1", i+1, r)
		}
		if state[i] < 0 {
			return 0, fmt.Errorf("negative population at node %d", i+1)
		}

		p *= (1 - r) * math.Pow(r, float64(state[i]))
	}

	return p, nil
}

// PSNetworkPopulationProbabilities returns the stationary probabilities of
// the total population 0..maxState of a network of c identical
// single-capacity processor-sharing nodes fed by join-shortest-queue
// routing with total arrival rate lambda and per-node service rate mu.
//
// Under join-shortest-queue the nodes act as one pool of c servers, so the
// total population is distributed like the number in system of an M/M/c
// queue.
func PSNetworkPopulationProbabilities(
	lambda, mu float64,
	c int,
	maxState int,
) ([]float64, error) {
	return MMcStateProbabilities(lambda, mu, c, maxState)
}
