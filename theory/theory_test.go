package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrafficEquationsTandem(t *testing.T) {
	// Two nodes in tandem: everything arriving at node 1 moves to node 2.
	lambda, err := TrafficEquations(
		[]float64{3, 0},
		[][]float64{
			{0, 1},
			{0, 0},
		})
	require.NoError(t, err)

	assert.InDelta(t, 3, lambda[0], 1e-12)
	assert.InDelta(t, 3, lambda[1], 1e-12)
}

func TestTrafficEquationsWithFeedback(t *testing.T) {
	// One node feeding half of its output back to itself. The effective
	// rate doubles: lambda = 2 + 0.5 * lambda.
	lambda, err := TrafficEquations(
		[]float64{2},
		[][]float64{{0.5}})
	require.NoError(t, err)

	assert.InDelta(t, 4, lambda[0], 1e-12)
}

func TestTrafficEquationsThreeNodeNetwork(t *testing.T) {
	lambda, err := TrafficEquations(
		[]float64{1, 0, 0},
		[][]float64{
			{0, 0.5, 0.5},
			{0, 0, 0.25},
			{0, 0, 0},
		})
	require.NoError(t, err)

	assert.InDelta(t, 1, lambda[0], 1e-12)
	assert.InDelta(t, 0.5, lambda[1], 1e-12)
	assert.InDelta(t, 0.625, lambda[2], 1e-12)
}

func TestTrafficEquationsRejectsBadShapes(t *testing.T) {
	_, err := TrafficEquations(nil, nil)
	assert.Error(t, err)

	_, err = TrafficEquations([]float64{1, 2}, [][]float64{{0}})
	assert.Error(t, err)

	_, err = TrafficEquations([]float64{1}, [][]float64{{0, 0}})
	assert.Error(t, err)
}

func TestMM1StateProbabilities(t *testing.T) {
	// lambda=1, mu=2: rho=1/2, P(n) = (1/2)^(n+1).
	probs, err := MM1StateProbabilities(1, 2, 3)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, probs[0], 1e-12)
	assert.InDelta(t, 0.25, probs[1], 1e-12)
	assert.InDelta(t, 0.125, probs[2], 1e-12)
	assert.InDelta(t, 0.0625, probs[3], 1e-12)
}

func TestMM1RejectsUnstableQueue(t *testing.T) {
	_, err := MM1StateProbabilities(2, 2, 5)
	assert.Error(t, err)
}

func TestMMcMatchesMM1WithOneServer(t *testing.T) {
	mm1, err := MM1StateProbabilities(1, 2, 5)
	require.NoError(t, err)

	mmc, err := MMcStateProbabilities(1, 2, 1, 5)
	require.NoError(t, err)

	for n := range mm1 {
		assert.InDelta(t, mm1[n], mmc[n], 1e-12)
	}
}

func TestMMcStateProbabilities(t *testing.T) {
	// M/M/2 with lambda=1, mu=1: a=1, rho=1/2.
	// p0 = 1/(1 + 1 + 1/(2*(1/2))) = 1/3.
	probs, err := MMcStateProbabilities(1, 1, 2, 4)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/3, probs[0], 1e-12)
	assert.InDelta(t, 1.0/3, probs[1], 1e-12)
	assert.InDelta(t, 1.0/6, probs[2], 1e-12)
	assert.InDelta(t, 1.0/12, probs[3], 1e-12)
	assert.InDelta(t, 1.0/24, probs[4], 1e-12)
}

func TestMMcProbabilitiesSumToOne(t *testing.T) {
	probs, err := MMcStateProbabilities(2, 1, 3, 200)
	require.NoError(t, err)

	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestErlangC(t *testing.T) {
	// M/M/2 with a=1: C = p0 * a^2 / (2! * (1-rho)) = (1/3) * 1 / 1 = 1/3.
	c, err := ErlangC(1, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, c, 1e-12)
}

func TestMM1MeanWaitingTime(t *testing.T) {
	// rho = 1/2: Wq = rho / (mu - lambda) = 0.5 / 1 = 0.5.
	wq, err := MM1MeanWaitingTime(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, wq, 1e-12)

	_, err = MM1MeanWaitingTime(2, 2)
	assert.Error(t, err)
}

func TestMMcMeanWaitingTime(t *testing.T) {
	// M/M/2 with a=1: Wq = C / (c*mu - lambda) = (1/3) / 1 = 1/3.
	wq, err := MMcMeanWaitingTime(1, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, wq, 1e-12)
}

func TestPSNetworkStateProbability(t *testing.T) {
	// Two independent nodes at utilisation 1/2 and 1/4.
	p, err := PSNetworkStateProbability(
		[]float64{0.5, 0.25}, []int{1, 0})
	require.NoError(t, err)

	// (1/2 * 1/2) * (3/4) = 3/16.
	assert.InDelta(t, 3.0/16, p, 1e-12)
}

func TestPSNetworkStateProbabilityValidation(t *testing.T) {
	_, err := PSNetworkStateProbability([]float64{0.5}, []int{1, 2})
	assert.Error(t, err)

	_, err = PSNetworkStateProbability([]float64{1.5}, []int{0})
	assert.Error(t, err)

	_, err = PSNetworkStateProbability([]float64{0.5}, []int{-1})
	assert.Error(t, err)
}

func TestPSNetworkPopulationMatchesMMc(t *testing.T) {
	mmc, err := MMcStateProbabilities(2, 1, 3, 10)
	require.NoError(t, err)

	pool, err := PSNetworkPopulationProbabilities(2, 1, 3, 10)
	require.NoError(t, err)

	assert.Equal(t, mmc, pool)
}
