// Package simulation assembles a queueing network into a runnable
// simulation: it builds the nodes, wires trackers and data recording, and
// drives the event engine until a time horizon or a customer count is
// reached.
package simulation

import (
	"fmt"

	"github.com/MHowells/ciw/monitoring"
	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/queueing"
	"github.com/MHowells/ciw/records"
	"github.com/MHowells/ciw/sim"
	"github.com/MHowells/ciw/trackers"
)

// A Simulation holds a runnable queueing network simulation.
type Simulation struct {
	id   string
	net  *network.Network
	seed int64

	engine    sim.Engine
	rng       *sim.PartitionedRNG
	registry  *queueing.Registry
	arrivals  *queueing.ArrivalNode
	collector *records.Collector
	trackers  []trackers.Tracker

	dataRecorder records.DataRecorder
	monitor      *monitoring.Monitor
	monitorAddr  string

	started bool
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetMonitor returns the monitor used in the simulation, or nil when
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorAddr returns the address of the monitoring server, or the empty
// string when monitoring is off.
func (s *Simulation) MonitorAddr() string {
	return s.monitorAddr
}

// Network returns the simulated network.
func (s *Simulation) Network() *network.Network {
	return s.net
}

// Node returns node i of the running simulation, for i in 1..N.
func (s *Simulation) Node(i int) queueing.Node {
	return s.registry.Node(i)
}

// CurrentTime returns the current simulation time.
func (s *Simulation) CurrentTime() sim.VTimeInSec {
	return s.engine.CurrentTime()
}

func (s *Simulation) start() {
	if s.started {
		return
	}

	s.arrivals.Start()
	s.started = true
}

// SimulateUntilMaxTime runs the simulation until the given time horizon.
// It can be called repeatedly with increasing horizons to continue the
// same run.
func (s *Simulation) SimulateUntilMaxTime(t sim.VTimeInSec) error {
	s.start()
	return s.engine.RunUntil(t)
}

// SimulateUntilMaxCustomers runs the simulation until n customers have
// left the network.
func (s *Simulation) SimulateUntilMaxCustomers(n int) error {
	s.start()

	for s.registry.Exit().Count() < n {
		evt, err := s.engine.Step()
		if err != nil {
			return err
		}

		if evt == nil {
			return fmt.Errorf(
				"simulation ran out of events after %d customers",
				s.registry.Exit().Count())
		}
	}

	return nil
}

// Records returns the data records collected so far.
func (s *Simulation) Records() []records.Record {
	return s.collector.All()
}

// Exit returns the exit node of the simulation.
func (s *Simulation) Exit() *queueing.ExitNode {
	return s.registry.Exit()
}

// StateProbabilities returns the state probabilities of the first tracker
// over the observation window [start, end].
func (s *Simulation) StateProbabilities(
	start, end sim.VTimeInSec,
) (map[string]float64, error) {
	if len(s.trackers) == 0 {
		return nil, fmt.Errorf("simulation has no tracker")
	}

	return s.trackers[0].StateProbabilities(start, end)
}

// TrackerStateProbabilities returns the state probabilities of the named
// tracker over the observation window [start, end].
func (s *Simulation) TrackerStateProbabilities(
	name string,
	start, end sim.VTimeInSec,
) (map[string]float64, error) {
	for _, t := range s.trackers {
		if t.Name() == name {
			return t.StateProbabilities(start, end)
		}
	}

	return nil, fmt.Errorf("no tracker named %s", name)
}

// Terminate terminates the simulation, flushing any pending records to the
// data recorder.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
