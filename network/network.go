// Package network describes the static configuration of a queueing network:
// the service stations, their server counts and disciplines, and the
// per-class arrival, service, and routing behavior.
package network

import (
	"fmt"

	"github.com/MHowells/ciw/dists"
	"github.com/MHowells/ciw/routing"
)

// Inf marks an unlimited number of servers or an unlimited waiting room.
const Inf = -1

// Discipline is the service discipline of a node.
type Discipline int

const (
	// FIFO serves customers one at a time, in arrival order, one per server.
	FIFO Discipline = iota

	// ProcessorSharing serves all present customers simultaneously, each
	// receiving an equal share of the node's capacity.
	ProcessorSharing
)

func (d Discipline) String() string {
	switch d {
	case FIFO:
		return "FIFO"
	case ProcessorSharing:
		return "ProcessorSharing"
	default:
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
}

// A Node describes one service station.
type Node struct {
	// Name identifies the node in records, trackers, and the monitor.
	Name string

	// Servers is the number of servers. For a ProcessorSharing node this is
	// the shared capacity: with n individuals present, each receives
	// min(1, Servers/n) of a server. Inf means unlimited.
	Servers int

	// QueueCapacity bounds the waiting room, not counting individuals in
	// service. An arrival to a full node is rejected and leaves the network.
	// Inf (the zero-value default via MakeBuilder) means unbounded.
	QueueCapacity int

	// Discipline selects FIFO or ProcessorSharing service.
	Discipline Discipline

	// Arrivals maps a customer class to its external inter-arrival time
	// distribution. A missing class, a nil entry, or dists.NoArrivals means
	// the class does not arrive externally at this node.
	Arrivals map[string]dists.Distribution

	// Services maps a customer class to its service time distribution.
	// Every class must have one.
	Services map[string]dists.Distribution

	// Routing maps a customer class to the router applied when the class
	// finishes service here. A missing class exits the network.
	Routing map[string]routing.Router
}

// A Network is a validated queueing network description. Service nodes are
// numbered 1..N; node number 0 is the exit.
type Network struct {
	classes    []string
	classIndex map[string]int
	nodes      []Node
}

// Classes returns the customer class names.
func (n *Network) Classes() []string {
	return n.classes
}

// ClassIndex returns the index of a class name, or -1 if unknown.
func (n *Network) ClassIndex(name string) int {
	idx, ok := n.classIndex[name]
	if !ok {
		return -1
	}

	return idx
}

// NumNodes returns the number of service nodes.
func (n *Network) NumNodes() int {
	return len(n.nodes)
}

// Node returns the description of service node i, for i in 1..NumNodes.
func (n *Network) Node(i int) Node {
	return n.nodes[i-1]
}

// ServiceDist returns the service distribution of a class at a node.
func (n *Network) ServiceDist(node int, class string) dists.Distribution {
	return n.nodes[node-1].Services[class]
}

// ArrivalDist returns the external arrival distribution of a class at a
// node, or nil when the class has no external arrivals there.
func (n *Network) ArrivalDist(node int, class string) dists.Distribution {
	d := n.nodes[node-1].Arrivals[class]
	if dists.IsNoArrivals(d) {
		return nil
	}

	return d
}

// Router returns the router of a class at a node. Classes without an
// explicit router exit the network.
func (n *Network) Router(node int, class string) routing.Router {
	r := n.nodes[node-1].Routing[class]
	if r == nil {
		return routing.Exit{}
	}

	return r
}
