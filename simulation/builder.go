package simulation

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/MHowells/ciw/monitoring"
	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/queueing"
	"github.com/MHowells/ciw/records"
	"github.com/MHowells/ciw/sim"
	"github.com/MHowells/ciw/trackers"
)

// Builder can be used to build a simulation.
type Builder struct {
	net            *network.Network
	seed           int64
	trackers       []trackers.Tracker
	recordToFile   bool
	outputFileName string
	monitorOn      bool
	monitorPort    int
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{seed: 1}
}

// WithNetwork sets the network to simulate.
func (b Builder) WithNetwork(net *network.Network) Builder {
	b.net = net
	return b
}

// WithSeed sets the master seed. Two simulations of the same network with
// the same seed produce identical results.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithTracker adds a state tracker. The tracker is hooked into every node
// of the network.
func (b Builder) WithTracker(t trackers.Tracker) Builder {
	b.trackers = append(b.trackers, t)
	return b
}

// WithDataRecording mirrors the collected records into an SQLite file.
func (b Builder) WithDataRecording() Builder {
	b.recordToFile = true
	return b
}

// WithOutputFileName sets the custom output file name for the data
// recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.recordToFile = true
	b.outputFileName = filename
	return b
}

// WithMonitoring starts a monitoring server alongside the simulation.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorOn = true
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.net == nil {
		panic("cannot build a simulation without a network")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:       xid.New().String(),
		net:      b.net,
		seed:     b.seed,
		trackers: b.trackers,
	}

	s.engine = sim.NewSerialEngine()
	s.collector = records.NewCollector()

	if b.recordToFile {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "ciw_sim_" + s.id
		}
		s.dataRecorder = records.NewDataRecorder(outputPath)
		s.collector.MirrorTo(s.dataRecorder)
	}

	s.buildNodes()

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterEngine(s.engine)
		for _, n := range s.registry.Nodes() {
			s.monitor.RegisterNode(n)
		}
		s.monitorAddr = s.monitor.StartServer()
	}

	return s
}

func (s *Simulation) buildNodes() {
	s.registry = queueing.NewRegistry(queueing.NewExitNode())

	deps := queueing.Deps{
		Engine:    s.engine,
		RNG:       sim.NewPartitionedRNG(s.seed),
		Registry:  s.registry,
		Collector: s.collector,
	}
	s.rng = deps.RNG

	for i := 1; i <= s.net.NumNodes(); i++ {
		spec := s.net.Node(i)

		var node queueing.Node
		switch spec.Discipline {
		case network.ProcessorSharing:
			node = queueing.NewPSNode(spec, i, deps)
		case network.FIFO:
			node = queueing.NewServiceNode(spec, i, deps)
		default:
			panic(fmt.Sprintf(
				"node %s has unknown discipline %v", spec.Name,
				spec.Discipline))
		}

		for _, t := range s.trackers {
			node.AcceptHook(t)
		}

		s.registry.Register(node)
	}

	s.arrivals = queueing.NewArrivalNode(s.net, deps)
}
