package queueing

import "github.com/MHowells/ciw/sim"

// The ExitNode collects the individuals that leave the network.
type ExitNode struct {
	name        string
	individuals []*Individual
}

// NewExitNode creates an empty ExitNode.
func NewExitNode() *ExitNode {
	return &ExitNode{name: "ExitNode"}
}

// Name returns the name of the exit node.
func (x *ExitNode) Name() string {
	return x.name
}

// Collect receives an individual leaving the network and stamps its exit
// date.
func (x *ExitNode) Collect(ind *Individual, now sim.VTimeInSec) {
	ind.ExitDate = now
	x.individuals = append(x.individuals, ind)
}

// Count returns the number of individuals that have left the network.
func (x *ExitNode) Count() int {
	return len(x.individuals)
}

// Individuals returns the collected individuals in exit order.
func (x *ExitNode) Individuals() []*Individual {
	return x.individuals
}
