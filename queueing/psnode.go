package queueing

import (
	"fmt"

	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/records"
	"github.com/MHowells/ciw/routing"
	"github.com/MHowells/ciw/sim"
)

// A PSDepartureEvent marks the projected completion of the individual with
// the least remaining work at a processor-sharing node. The epoch ties the
// event to the node state it was computed from: any population change bumps
// the epoch, turning in-flight departure events into no-ops.
type PSDepartureEvent struct {
	sim.EventBase

	epoch uint64
}

// A PSNode is a processor-sharing service station. Every individual present
// is served simultaneously. With n individuals present and a capacity of R,
// each receives min(1, R/n) of a server, so the node degrades gracefully
// under load instead of queueing.
type PSNode struct {
	sim.HookableBase

	name   string
	number int
	spec   network.Node
	deps   Deps

	jobs       []*psJob
	lastUpdate sim.VTimeInSec
	epoch      uint64
}

type psJob struct {
	ind          *Individual
	arrival      sim.VTimeInSec
	remaining    float64
	popAtArrival int
}

// NewPSNode creates a PSNode from a network node description. The node's
// server count is the shared capacity.
func NewPSNode(spec network.Node, number int, deps Deps) *PSNode {
	return &PSNode{
		name:   spec.Name,
		number: number,
		spec:   spec,
		deps:   deps,
	}
}

// Name returns the name of the node.
func (n *PSNode) Name() string {
	return n.name
}

// Number returns the node number.
func (n *PSNode) Number() int {
	return n.number
}

// Population returns the number of individuals currently sharing the node.
func (n *PSNode) Population() int {
	return len(n.jobs)
}

// shareRate is the service rate each individual receives with pop
// individuals present, as a fraction of one server.
func (n *PSNode) shareRate(pop int) float64 {
	r := float64(n.spec.Servers)
	p := float64(pop)

	if r >= p {
		return 1
	}

	return r / p
}

// advance progresses every job's remaining work to the current time.
func (n *PSNode) advance(now sim.VTimeInSec) {
	elapsed := float64(now - n.lastUpdate)
	n.lastUpdate = now

	if elapsed == 0 || len(n.jobs) == 0 {
		return
	}

	progress := elapsed * n.shareRate(len(n.jobs))
	for _, job := range n.jobs {
		job.remaining -= progress
		if job.remaining < 0 {
			job.remaining = 0
		}
	}
}

// scheduleNextDeparture recomputes the earliest projected completion and
// schedules a departure event for it. Any previously scheduled departure is
// invalidated through the epoch.
func (n *PSNode) scheduleNextDeparture(now sim.VTimeInSec) {
	n.epoch++

	if len(n.jobs) == 0 {
		return
	}

	minRemaining := n.jobs[0].remaining
	for _, job := range n.jobs[1:] {
		if job.remaining < minRemaining {
			minRemaining = job.remaining
		}
	}

	eta := now + sim.VTimeInSec(minRemaining/n.shareRate(len(n.jobs)))

	n.deps.Engine.Schedule(&PSDepartureEvent{
		EventBase: sim.MakeEventBase(eta, n),
		epoch:     n.epoch,
	})
}

// AcceptIndividual adds an individual to the sharing pool. Processor
// sharing has no waiting line, so no individual is ever rejected.
func (n *PSNode) AcceptIndividual(ind *Individual, now sim.VTimeInSec) {
	n.advance(now)

	requirement := n.spec.Services[ind.Class].Sample(
		n.deps.RNG.Stream(sim.StreamServices))

	n.jobs = append(n.jobs, &psJob{
		ind:          ind,
		arrival:      now,
		remaining:    requirement,
		popAtArrival: len(n.jobs),
	})

	n.invokeNodeHook(HookPosNodeAccept, ind, now)

	n.scheduleNextDeparture(now)
}

// Handle processes a projected departure. Stale events, whose epoch does
// not match the node's, are discarded: a later arrival has already changed
// the sharing rate and rescheduled the departure.
func (n *PSNode) Handle(e sim.Event) error {
	evt, ok := e.(*PSDepartureEvent)
	if !ok {
		return fmt.Errorf("node %s cannot handle event %T", n.name, e)
	}

	if evt.epoch != n.epoch {
		return nil
	}

	now := evt.Time()
	n.advance(now)

	job := n.takeMinimumJob()
	ind := job.ind

	dest := n.router(ind.Class).NextNode(
		n.number, n.deps.Registry, n.deps.RNG.Stream(sim.StreamRouting))

	n.deps.Collector.Add(records.Record{
		IndividualID:         ind.ID,
		Class:                ind.Class,
		Node:                 n.number,
		ArrivalDate:          job.arrival,
		WaitingTime:          0,
		ServiceStartDate:     job.arrival,
		ServiceTime:          now - job.arrival,
		ServiceEndDate:       now,
		ExitDate:             now,
		Destination:          dest,
		QueueSizeAtArrival:   job.popAtArrival,
		QueueSizeAtDeparture: len(n.jobs),
		RecordType:           records.TypeService,
	})

	n.invokeNodeHook(HookPosNodeRelease, ind, now)

	n.scheduleNextDeparture(now)

	n.deps.Registry.Deliver(ind, dest, now)

	return nil
}

// takeMinimumJob removes and returns the job with the least remaining work.
// A valid departure event fires exactly at that job's projected completion.
// Ties keep the earliest-arrived job, so simultaneous completions stay
// deterministic.
func (n *PSNode) takeMinimumJob() *psJob {
	minIdx := 0
	for i, job := range n.jobs[1:] {
		if job.remaining < n.jobs[minIdx].remaining {
			minIdx = i + 1
		}
	}

	job := n.jobs[minIdx]
	n.jobs = append(n.jobs[:minIdx], n.jobs[minIdx+1:]...)
	return job
}

func (n *PSNode) router(class string) routing.Router {
	if r := n.spec.Routing[class]; r != nil {
		return r
	}

	return routing.Exit{}
}

func (n *PSNode) invokeNodeHook(
	pos *sim.HookPos,
	ind *Individual,
	now sim.VTimeInSec,
) {
	if n.NumHooks() == 0 {
		return
	}

	n.InvokeHook(sim.HookCtx{
		Domain: n,
		Pos:    pos,
		Item:   ind,
		Detail: NodeHookDetail{
			Now:        now,
			Node:       n.number,
			Class:      ind.Class,
			Population: n.Population(),
		},
	})
}
