package queueing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHowells/ciw/dists"
	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/sim"
)

func arrivalNetwork(t *testing.T) *network.Network {
	t.Helper()

	arrival, err := dists.NewDeterministic(1.0)
	require.NoError(t, err)
	service, err := dists.NewDeterministic(0.25)
	require.NoError(t, err)

	net, err := network.MakeBuilder().
		WithNode(network.Node{
			Name:     "Queue",
			Servers:  1,
			Arrivals: map[string]dists.Distribution{"Customer": arrival},
			Services: map[string]dists.Distribution{"Customer": service},
		}).
		Build()
	require.NoError(t, err)

	return net
}

func TestArrivalsSustainThemselves(t *testing.T) {
	deps, collector, registry := testDeps(t)

	net := arrivalNetwork(t)
	registry.Register(NewServiceNode(net.Node(1), 1, deps))

	arrivals := NewArrivalNode(net, deps)
	arrivals.Start()

	require.NoError(t, deps.Engine.RunUntil(10.5))

	// Deterministic(1.0) arrivals land at 1, 2, ..., 10 and every one of
	// them finishes a quarter unit later.
	recs := collector.All()
	require.Len(t, recs, 10)
	for i, rec := range recs {
		assert.Equal(t, int64(i+1), rec.IndividualID)
		assert.Equal(t, sim.VTimeInSec(i+1), rec.ArrivalDate)
		assert.Equal(t, sim.VTimeInSec(0.25), rec.ServiceTime)
	}

	assert.Equal(t, 10, registry.Exit().Count())
}

func TestArrivalStampsNetworkArrivalDate(t *testing.T) {
	deps, _, registry := testDeps(t)

	net := arrivalNetwork(t)
	registry.Register(NewServiceNode(net.Node(1), 1, deps))

	arrivals := NewArrivalNode(net, deps)
	arrivals.Start()

	require.NoError(t, deps.Engine.RunUntil(3.5))

	inds := registry.Exit().Individuals()
	require.Len(t, inds, 3)
	for i, ind := range inds {
		assert.Equal(t, sim.VTimeInSec(i+1), ind.ArrivalDate)
		assert.Equal(t, sim.VTimeInSec(i+1)+0.25, ind.ExitDate)
	}
}
