package queueing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHowells/ciw/dists"
	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/records"
	"github.com/MHowells/ciw/sim"
)

func testDeps(t *testing.T) (Deps, *records.Collector, *Registry) {
	t.Helper()

	collector := records.NewCollector()
	registry := NewRegistry(NewExitNode())

	deps := Deps{
		Engine:    sim.NewSerialEngine(),
		RNG:       sim.NewPartitionedRNG(42),
		Registry:  registry,
		Collector: collector,
	}

	return deps, collector, registry
}

func deterministicSpec(
	t *testing.T,
	name string,
	servers int,
	serviceTime float64,
) network.Node {
	t.Helper()

	d, err := dists.NewDeterministic(serviceTime)
	require.NoError(t, err)

	return network.Node{
		Name:          name,
		Servers:       servers,
		QueueCapacity: network.Inf,
		Services:      map[string]dists.Distribution{"Customer": d},
	}
}

func TestSingleServerServesInOrder(t *testing.T) {
	deps, collector, registry := testDeps(t)

	node := NewServiceNode(deterministicSpec(t, "Queue", 1, 2.0), 1, deps)
	registry.Register(node)

	node.AcceptIndividual(&Individual{ID: 1, Class: "Customer"}, 0)
	node.AcceptIndividual(&Individual{ID: 2, Class: "Customer"}, 0)
	node.AcceptIndividual(&Individual{ID: 3, Class: "Customer"}, 0)

	require.NoError(t, deps.Engine.Run())

	recs := collector.All()
	require.Len(t, recs, 3)

	assert.Equal(t, int64(1), recs[0].IndividualID)
	assert.Equal(t, sim.VTimeInSec(2.0), recs[0].ServiceEndDate)
	assert.Equal(t, sim.VTimeInSec(0.0), recs[0].WaitingTime)

	assert.Equal(t, int64(2), recs[1].IndividualID)
	assert.Equal(t, sim.VTimeInSec(4.0), recs[1].ServiceEndDate)
	assert.Equal(t, sim.VTimeInSec(2.0), recs[1].WaitingTime)

	assert.Equal(t, int64(3), recs[2].IndividualID)
	assert.Equal(t, sim.VTimeInSec(6.0), recs[2].ServiceEndDate)
	assert.Equal(t, sim.VTimeInSec(4.0), recs[2].WaitingTime)

	assert.Equal(t, 3, registry.Exit().Count())
	assert.Equal(t, 0, node.Population())
}

func TestMultiServerServesInParallel(t *testing.T) {
	deps, collector, registry := testDeps(t)

	node := NewServiceNode(deterministicSpec(t, "Queue", 2, 2.0), 1, deps)
	registry.Register(node)

	node.AcceptIndividual(&Individual{ID: 1, Class: "Customer"}, 0)
	node.AcceptIndividual(&Individual{ID: 2, Class: "Customer"}, 0)

	require.NoError(t, deps.Engine.Run())

	recs := collector.All()
	require.Len(t, recs, 2)
	assert.Equal(t, sim.VTimeInSec(2.0), recs[0].ServiceEndDate)
	assert.Equal(t, sim.VTimeInSec(2.0), recs[1].ServiceEndDate)
}

func TestQueueSizeIsRecorded(t *testing.T) {
	deps, collector, registry := testDeps(t)

	node := NewServiceNode(deterministicSpec(t, "Queue", 1, 1.0), 1, deps)
	registry.Register(node)

	node.AcceptIndividual(&Individual{ID: 1, Class: "Customer"}, 0)
	node.AcceptIndividual(&Individual{ID: 2, Class: "Customer"}, 0)
	node.AcceptIndividual(&Individual{ID: 3, Class: "Customer"}, 0)

	require.NoError(t, deps.Engine.Run())

	recs := collector.All()
	require.Len(t, recs, 3)
	assert.Equal(t, 0, recs[0].QueueSizeAtArrival)
	assert.Equal(t, 2, recs[0].QueueSizeAtDeparture)
	assert.Equal(t, 0, recs[1].QueueSizeAtArrival)
	assert.Equal(t, 1, recs[2].QueueSizeAtArrival)
}

func TestFullNodeRejects(t *testing.T) {
	deps, collector, registry := testDeps(t)

	spec := deterministicSpec(t, "Queue", 1, 5.0)
	spec.QueueCapacity = 1
	node := NewServiceNode(spec, 1, deps)
	registry.Register(node)

	node.AcceptIndividual(&Individual{ID: 1, Class: "Customer"}, 0)
	node.AcceptIndividual(&Individual{ID: 2, Class: "Customer"}, 0)
	node.AcceptIndividual(&Individual{ID: 3, Class: "Customer"}, 0)

	rejections := collector.Filter(func(r records.Record) bool {
		return r.RecordType == records.TypeRejection
	})
	require.Len(t, rejections, 1)
	assert.Equal(t, int64(3), rejections[0].IndividualID)
	assert.Equal(t, 1, registry.Exit().Count())

	require.NoError(t, deps.Engine.Run())
	assert.Equal(t, 3, registry.Exit().Count())
}

func TestNodeHooksFire(t *testing.T) {
	deps, _, registry := testDeps(t)

	node := NewServiceNode(deterministicSpec(t, "Queue", 1, 1.0), 1, deps)
	registry.Register(node)

	hook := &recordingHook{}
	node.AcceptHook(hook)

	node.AcceptIndividual(&Individual{ID: 1, Class: "Customer"}, 0)
	require.NoError(t, deps.Engine.Run())

	assert.Equal(t,
		[]*sim.HookPos{HookPosNodeAccept, HookPosNodeRelease},
		hook.positions)
}

func TestInfiniteServersNeverQueue(t *testing.T) {
	deps, collector, registry := testDeps(t)

	node := NewServiceNode(
		deterministicSpec(t, "Queue", network.Inf, 3.0), 1, deps)
	registry.Register(node)

	for i := int64(1); i <= 10; i++ {
		node.AcceptIndividual(&Individual{ID: i, Class: "Customer"}, 0)
	}

	require.NoError(t, deps.Engine.Run())

	for _, rec := range collector.All() {
		assert.Equal(t, sim.VTimeInSec(0), rec.WaitingTime)
		assert.Equal(t, sim.VTimeInSec(3.0), rec.ServiceEndDate)
	}
}
