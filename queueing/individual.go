// Package queueing implements the service stations of a queueing network:
// FIFO multi-server nodes, processor-sharing nodes, the arrival node that
// feeds the network, and the exit node that collects finished customers.
package queueing

import (
	"fmt"

	"github.com/MHowells/ciw/sim"
)

// An Individual is one customer travelling through the network.
type Individual struct {
	// ID is unique within a simulation, assigned in arrival order.
	ID int64

	// Class is the customer class name.
	Class string

	// ArrivalDate is the time the individual entered the network.
	ArrivalDate sim.VTimeInSec

	// ExitDate is the time the individual left the network. Zero until
	// collected by the exit node.
	ExitDate sim.VTimeInSec
}

func (i *Individual) String() string {
	return fmt.Sprintf("Individual[%d, %s]", i.ID, i.Class)
}
