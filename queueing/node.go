package queueing

import (
	"fmt"

	"github.com/MHowells/ciw/sim"
)

// HookPosNodeAccept triggers when a node accepts an individual. Trackers
// observe populations through these hooks.
var HookPosNodeAccept = &sim.HookPos{Name: "NodeAccept"}

// HookPosNodeRelease triggers when an individual finishes service and
// leaves a node.
var HookPosNodeRelease = &sim.HookPos{Name: "NodeRelease"}

// HookPosNodeReject triggers when a full node turns an individual away.
var HookPosNodeReject = &sim.HookPos{Name: "NodeReject"}

// NodeHookDetail is the Detail payload of the node hook positions. The Item
// of the hook context is the *Individual involved.
type NodeHookDetail struct {
	Now        sim.VTimeInSec
	Node       int
	Class      string
	Population int
}

// A Node is a service station in the network.
type Node interface {
	sim.Named
	sim.Handler
	sim.Hookable

	// Number returns the node number, in 1..N.
	Number() int

	// Population returns the number of individuals present, including those
	// in service.
	Population() int

	// AcceptIndividual hands an individual to the node at the current time.
	AcceptIndividual(ind *Individual, now sim.VTimeInSec)
}

// A Registry holds the nodes of a running simulation, routes individuals
// between them, and exposes network occupancy to routing policies.
type Registry struct {
	nodes []Node
	exit  *ExitNode
}

// NewRegistry creates a Registry with an exit node and no service nodes.
func NewRegistry(exit *ExitNode) *Registry {
	return &Registry{exit: exit}
}

// Register adds a service node. Nodes must be registered in number order.
func (r *Registry) Register(n Node) {
	if n.Number() != len(r.nodes)+1 {
		panic(fmt.Sprintf(
			"node %s registered out of order: number %d, expected %d",
			n.Name(), n.Number(), len(r.nodes)+1))
	}

	r.nodes = append(r.nodes, n)
}

// NumNodes returns the number of service nodes.
func (r *Registry) NumNodes() int {
	return len(r.nodes)
}

// Node returns service node i, for i in 1..NumNodes.
func (r *Registry) Node(i int) Node {
	return r.nodes[i-1]
}

// Nodes returns all the service nodes in number order.
func (r *Registry) Nodes() []Node {
	return r.nodes
}

// Exit returns the exit node.
func (r *Registry) Exit() *ExitNode {
	return r.exit
}

// Population returns the number of individuals present at a node. Together
// with NumNodes this implements routing.StateObserver.
func (r *Registry) Population(node int) int {
	return r.nodes[node-1].Population()
}

// Deliver moves an individual to a destination node, or to the exit when
// the destination is 0.
func (r *Registry) Deliver(
	ind *Individual,
	dest int,
	now sim.VTimeInSec,
) {
	if dest == 0 {
		r.exit.Collect(ind, now)
		return
	}

	r.nodes[dest-1].AcceptIndividual(ind, now)
}
