package queueing

import (
	"fmt"

	"github.com/MHowells/ciw/network"
	"github.com/MHowells/ciw/records"
	"github.com/MHowells/ciw/routing"
	"github.com/MHowells/ciw/sim"
)

// Deps bundles the simulation-wide services a node needs.
type Deps struct {
	Engine    sim.Engine
	RNG       *sim.PartitionedRNG
	Registry  *Registry
	Collector *records.Collector
}

// A ServiceCompletionEvent marks the end of one service at a FIFO node.
type ServiceCompletionEvent struct {
	sim.EventBase

	Individual     *Individual
	nodeArrival    sim.VTimeInSec
	serviceStart   sim.VTimeInSec
	queueAtArrival int
}

// A ServiceNode is a multi-server FIFO service station. Customers wait in
// a FIFO line until a server frees up, are served one at a time, and are
// then routed onwards.
type ServiceNode struct {
	sim.HookableBase

	name   string
	number int
	spec   network.Node
	deps   Deps

	waiting   Buffer
	inService int
}

type waitingEntry struct {
	ind            *Individual
	arrivedAt      sim.VTimeInSec
	queueAtArrival int
}

// NewServiceNode creates a ServiceNode following a network node spec.
func NewServiceNode(spec network.Node, number int, deps Deps) *ServiceNode {
	n := &ServiceNode{
		name:   spec.Name,
		number: number,
		spec:   spec,
		deps:   deps,
	}

	n.waiting = NewBuffer(
		fmt.Sprintf("%s.WaitingLine", spec.Name), spec.QueueCapacity)

	return n
}

// Name returns the name of the node.
func (n *ServiceNode) Name() string {
	return n.name
}

// Number returns the node number.
func (n *ServiceNode) Number() int {
	return n.number
}

// Population returns the number of individuals present, waiting or in
// service.
func (n *ServiceNode) Population() int {
	return n.inService + n.waiting.Size()
}

// WaitingLine returns the node's waiting line.
func (n *ServiceNode) WaitingLine() Buffer {
	return n.waiting
}

// AcceptIndividual hands an individual to the node. If all servers are busy
// and the waiting line is full, the individual is rejected and leaves the
// network.
func (n *ServiceNode) AcceptIndividual(
	ind *Individual,
	now sim.VTimeInSec,
) {
	if !n.serverFree() && !n.waiting.CanPush() {
		n.reject(ind, now)
		return
	}

	queueAtArrival := n.waiting.Size()

	if n.serverFree() {
		n.inService++
		n.invokeNodeHook(HookPosNodeAccept, ind, now)
		n.startService(ind, now, now, queueAtArrival)
		return
	}

	n.waiting.Push(&waitingEntry{
		ind:            ind,
		arrivedAt:      now,
		queueAtArrival: queueAtArrival,
	})
	n.invokeNodeHook(HookPosNodeAccept, ind, now)
}

func (n *ServiceNode) serverFree() bool {
	return n.spec.Servers == network.Inf || n.inService < n.spec.Servers
}

func (n *ServiceNode) startService(
	ind *Individual,
	now sim.VTimeInSec,
	nodeArrival sim.VTimeInSec,
	queueAtArrival int,
) {
	st := n.spec.Services[ind.Class].Sample(
		n.deps.RNG.Stream(sim.StreamServices))

	evt := &ServiceCompletionEvent{
		EventBase:      sim.MakeEventBase(now+sim.VTimeInSec(st), n),
		Individual:     ind,
		nodeArrival:    nodeArrival,
		serviceStart:   now,
		queueAtArrival: queueAtArrival,
	}
	n.deps.Engine.Schedule(evt)
}

// Handle processes a service completion: it records the finished episode,
// frees the server for the next waiting individual, and routes the finished
// individual onwards.
func (n *ServiceNode) Handle(e sim.Event) error {
	evt, ok := e.(*ServiceCompletionEvent)
	if !ok {
		return fmt.Errorf("node %s cannot handle event %T", n.name, e)
	}

	now := evt.Time()
	ind := evt.Individual

	n.inService--

	dest := n.router(ind.Class).NextNode(
		n.number, n.deps.Registry, n.deps.RNG.Stream(sim.StreamRouting))

	n.deps.Collector.Add(records.Record{
		IndividualID:         ind.ID,
		Class:                ind.Class,
		Node:                 n.number,
		ArrivalDate:          evt.nodeArrival,
		WaitingTime:          evt.serviceStart - evt.nodeArrival,
		ServiceStartDate:     evt.serviceStart,
		ServiceTime:          now - evt.serviceStart,
		ServiceEndDate:       now,
		ExitDate:             now,
		Destination:          dest,
		QueueSizeAtArrival:   evt.queueAtArrival,
		QueueSizeAtDeparture: n.waiting.Size(),
		RecordType:           records.TypeService,
	})

	n.invokeNodeHook(HookPosNodeRelease, ind, now)

	if entry, ok := n.waiting.Pop().(*waitingEntry); ok {
		n.inService++
		n.startService(entry.ind, now, entry.arrivedAt, entry.queueAtArrival)
	}

	n.deps.Registry.Deliver(ind, dest, now)

	return nil
}

func (n *ServiceNode) router(class string) routing.Router {
	if r := n.spec.Routing[class]; r != nil {
		return r
	}

	return routing.Exit{}
}

func (n *ServiceNode) reject(ind *Individual, now sim.VTimeInSec) {
	n.deps.Collector.Add(records.Record{
		IndividualID:       ind.ID,
		Class:              ind.Class,
		Node:               n.number,
		ArrivalDate:        now,
		ExitDate:           now,
		QueueSizeAtArrival: n.waiting.Size(),
		RecordType:         records.TypeRejection,
	})

	n.invokeNodeHook(HookPosNodeReject, ind, now)

	n.deps.Registry.Exit().Collect(ind, now)
}

func (n *ServiceNode) invokeNodeHook(
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
