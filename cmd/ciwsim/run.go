package main

import (
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/records"
	"github.com/MHowells/ciw/sim"
	"github.com/MHowells/ciw/simulation"
	"github.com/MHowells/ciw/trackers"
)

var (
	configPath   string
	seed         int64
	maxTime      float64
	maxCustomers int
	warmup       float64
	trackerName  string
	outputFile   string
	monitorOn    bool
	monitorPort  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a queueing network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		net, err := network.LoadFile(configPath)
		if err != nil {
			logrus.Fatalf("Cannot load network: %s", err)
		}

		s := buildSimulation(net)
		defer s.Terminate()

		if monitorOn {
			if err := browser.OpenURL(s.MonitorAddr()); err != nil {
				logrus.Warnf("Cannot open browser: %s", err)
			}
		}

		runSimulation(s)
		reportRecords(s)
		reportStateProbabilities(s)
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "network.yaml",
		"Path to the network configuration file")
	runCmd.Flags().Int64Var(&seed, "seed", 1,
		"Master seed for all random streams")
	runCmd.Flags().Float64Var(&maxTime, "max-time", 0,
		"Simulate until this time horizon")
	runCmd.Flags().IntVar(&maxCustomers, "max-customers", 0,
		"Simulate until this many customers have left the network")
	runCmd.Flags().Float64Var(&warmup, "warmup", 0,
		"Discard this much time before computing state probabilities")
	runCmd.Flags().StringVar(&trackerName, "tracker", "system",
		"State tracker to attach (system, nodes, none)")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Mirror records into this SQLite file")
	runCmd.Flags().BoolVar(&monitorOn, "monitor", false,
		"Start the monitoring server and open the dashboard")
	runCmd.Flags().IntVar(&monitorPort, "monitor-port", 0,
		"Port for the monitoring server")
}

func buildSimulation(net *network.Network) *simulation.Simulation {
	b := simulation.MakeBuilder().
		WithNetwork(net).
		WithSeed(seed)

	switch trackerName {
	case "system":
		b = b.WithTracker(trackers.NewSystemPopulation())
	case "nodes":
		b = b.WithTracker(trackers.NewNodePopulation(net.NumNodes()))
	case "none":
	default:
		logrus.Fatalf("Unknown tracker: %s", trackerName)
	}

	if outputFile != "" {
		b = b.WithOutputFileName(outputFile)
	}

	if monitorOn {
		b = b.WithMonitoring()
		if monitorPort > 0 {
			b = b.WithMonitorPort(monitorPort)
		}
	}

	return b.Build()
}

func runSimulation(s *simulation.Simulation) {
	switch {
	case maxTime > 0:
		logrus.Infof("Simulating until time %.2f", maxTime)
		if err := s.SimulateUntilMaxTime(sim.VTimeInSec(maxTime)); err != nil {
			logrus.Fatalf("Simulation failed: %s", err)
		}
	case maxCustomers > 0:
		logrus.Infof("Simulating until %d customers", maxCustomers)
		if err := s.SimulateUntilMaxCustomers(maxCustomers); err != nil {
			logrus.Fatalf("Simulation failed: %s", err)
		}
	default:
		logrus.Fatal("One of --max-time or --max-customers is required")
	}
}

func reportRecords(s *simulation.Simulation) {
	recs := s.Records()

	services := 0
	rejections := 0
	var totalWait, totalService sim.VTimeInSec
	for _, r := range recs {
		switch r.RecordType {
		case records.TypeService:
			services++
			totalWait += r.WaitingTime
			totalService += r.ServiceTime
		case records.TypeRejection:
			rejections++
		}
	}

	logrus.Infof("Completed services: %d", services)
	logrus.Infof("Rejections: %d", rejections)
	logrus.Infof("Customers left the network: %d", s.Exit().Count())

	if services > 0 {
		logrus.Infof("Mean waiting time: %.4f",
			float64(totalWait)/float64(services))
		logrus.Infof("Mean service time: %.4f",
			float64(totalService)/float64(services))
	}
}

func reportStateProbabilities(s *simulation.Simulation) {
	if trackerName == "none" {
		return
	}

	end := s.CurrentTime()
	if warmup >= float64(end) {
		logrus.Warnf("Warm-up %.2f covers the whole run, skipping state "+
			"probabilities", warmup)
		return
	}

	probs, err := s.StateProbabilities(sim.VTimeInSec(warmup), end)
	if err != nil {
		logrus.Fatalf("Cannot compute state probabilities: %s", err)
	}

	logrus.Infof("State probabilities over [%.2f, %.2f]:", warmup, end)
	for _, state := range trackers.SortedStates(probs) {
		logrus.Infof("  %s: %.6f", state, probs[state])
	}
}
