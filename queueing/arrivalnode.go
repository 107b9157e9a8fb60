package queueing

import (
	"fmt"

	"github.com/MHowells/ciw/dists"
	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/sim"
)

// An ArrivalEvent is the external arrival of one new individual of a class
// at a node.
type ArrivalEvent struct {
	sim.EventBase

	Node  int
	Class string
}

// The ArrivalNode generates the external arrival processes of the network.
// For every node/class pair with an arrival distribution, it samples
// inter-arrival times and injects newly created individuals. Every arrival
// schedules the next one, so the processes sustain themselves until the
// driver stops the engine.
type ArrivalNode struct {
	name string
	net  *network.Network
	deps Deps

	nextID int64
}

// NewArrivalNode creates an ArrivalNode for a network.
func NewArrivalNode(net *network.Network, deps Deps) *ArrivalNode {
	return &ArrivalNode{
		name: "ArrivalNode",
		net:  net,
		deps: deps,
	}
}

// Name returns the name of the arrival node.
func (a *ArrivalNode) Name() string {
	return a.name
}

// Start schedules the first arrival of every node/class pair that has an
// external arrival distribution. It must be called once, before the engine
// runs.
func (a *ArrivalNode) Start() {
	for node := 1; node <= a.net.NumNodes(); node++ {
		for _, class := range a.net.Classes() {
			d := a.net.ArrivalDist(node, class)
			if dists.IsNoArrivals(d) {
				continue
			}

			a.scheduleNext(node, class, 0)
		}
	}
}

func (a *ArrivalNode) scheduleNext(
	node int,
	class string,
	now sim.VTimeInSec,
) {
	d := a.net.ArrivalDist(node, class)
	gap := d.Sample(a.deps.RNG.Stream(sim.StreamArrivals))

	a.deps.Engine.Schedule(&ArrivalEvent{
		EventBase: sim.MakeEventBase(now+sim.VTimeInSec(gap), a),
		Node:      node,
		Class:     class,
	})
}

// Handle processes one arrival: it creates the individual, hands it to the
// target node, and schedules the next arrival of the same node/class pair.
func (a *ArrivalNode) Handle(e sim.Event) error {
	evt, ok := e.(*ArrivalEvent)
	if !ok {
		return fmt.Errorf("arrival node cannot handle event %T", e)
	}

	now := evt.Time()

	a.nextID++
	ind := &Individual{
		ID:          a.nextID,
		Class:       evt.Class,
		ArrivalDate: now,
	}

	a.deps.Registry.Node(evt.Node).AcceptIndividual(ind, now)

	a.scheduleNext(evt.Node, evt.Class, now)

	return nil
}
