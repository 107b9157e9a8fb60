// Package theory provides closed-form results for Markovian queueing
// systems: traffic equations for open networks, M/M/1 and M/M/c state
// probabilities, and product-form results for networks of
// processor-sharing queues. Simulations are validated against these.
package theory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// TrafficEquations solves the traffic equations of an open network,
//
//	lambda_i = external_i + sum_j lambda_j * routing[j][i],
//
// returning the effective arrival rate at every node. The routing matrix
// holds the probability of moving from node j to node i; row sums below
// one leak customers out of the network.
func TrafficEquations(external []float64, routing [][]float64) ([]float64, error) {
	n := len(external)
	if n == 0 {
		return nil, fmt.Errorf("no nodes")
	}
	if len(routing) != n {
		return nil, fmt.Errorf(
			"routing matrix has %d rows, want %d", len(routing), n)
	}

	// (I - P^T) lambda = external
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		if len(routing[i]) != n {
			return nil, fmt.Errorf(
				"routing matrix row %d has %d entries, want %d",
				i, len(routing[i]), n)
		}

		for j := 0; j < n; j++ {
			v := -routing[j][i]
			if i == j {
				v++
			}
			a.Set(i, j, v)
		}
	}

	b := mat.NewVecDense(n, external)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("traffic equations are singular: %w", err)
	}

	lambda := make([]float64, n)
	for i := 0; i < n; i++ {
		lambda[i] = x.AtVec(i)
	}

	return lambda, nil
}

// MM1StateProbabilities returns the stationary probabilities of states
// 0..maxState of an M/M/1 queue with arrival rate lambda and service rate
// mu. The queue must be stable, lambda < mu.
func MM1StateProbabilities(
	lambda, mu float64,
	maxState int,
) ([]float64, error) {
	rho := lambda / mu
	if rho >= 1 {
		return nil, fmt.Errorf(
			"unstable queue: utilisation %.3f >= 1", rho)
	}

	probs := make([]float64, maxState+1)
	for n := range probs {
		probs[n] = (1 - rho) * math.Pow(rho, float64(n))
	}

	return probs, nil
}

// MMcStateProbabilities returns the stationary probabilities of states
// 0..maxState of an M/M/c queue with arrival rate lambda, per-server
// service rate mu, and c servers. The offered load lambda/(c*mu) must be
// below one.
func MMcStateProbabilities(
	lambda, mu float64,
	c int,
	maxState int,
) ([]float64, error) {
	if c < 1 {
		return nil, fmt.Errorf("need at least one server, got %d", c)
	}

	a := lambda / mu
	rho := a / float64(c)
	if rho >= 1 {
		return nil, fmt.Errorf(
			"unstable queue: utilisation %.3f >= 1", rho)
	}

	p0 := mmcEmptyProbability(a, c, rho)

	probs := make([]float64, maxState+1)
	for n := range probs {
		if n <= c {
			probs[n] = p0 * math.Pow(a, float64(n)) /
				factorial(n)
		} else {
			probs[n] = p0 * math.Pow(a, float64(n)) /
				(factorial(c) * math.Pow(float64(c), float64(n-c)))
		}
	}

	return probs, nil
}

// ErlangC returns the probability that an arriving customer has to wait in
// an M/M/c queue with arrival rate lambda and per-server service rate mu.
func ErlangC(lambda, mu float64, c int) (float64, error) {
	a := lambda / mu
	rho := a / float64(c)
	if rho >= 1 {
		return 0, fmt.Errorf(
			"unstable queue: utilisation %.3f >= 1", rho)
	}

	p0 := mmcEmptyProbability(a, c, rho)

	return p0 * math.Pow(a, float64(c)) /
		(factorial(c) * (1 - rho)), nil
}

// MM1MeanWaitingTime returns the mean time spent waiting, excluding
// service, in an M/M/1 queue.
func MM1MeanWaitingTime(lambda, mu float64) (float64, error) {
	rho := lambda / mu
	if rho >= 1 {
		return 0, fmt.Errorf(
			"unstable queue: utilisation %.3f >= 1", rho)
	}

	return rho / (mu - lambda), nil
}

// MMcMeanWaitingTime returns the mean time spent waiting, excluding
// service, in an M/M/c queue.
func MMcMeanWaitingTime(lambda, mu float64, c int) (float64, error) {
	pWait, err := ErlangC(lambda, mu, c)
	if err != nil {
		return 0, err
	}

	return pWait / (float64(c)*mu - lambda), nil
}

func mmcEmptyProbability(a float64, c int, rho float64) float64 {
	sum := 0.0
	for k := 0; k < c; k++ {
		sum += math.Pow(a, float64(k)) / factorial(k)
	}
	sum += math.Pow(a, float64(c)) / (factorial(c) * (1 - rho))

	return 1 / sum
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
