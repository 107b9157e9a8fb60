package sim

// TimeTeller can be used to get the current virtual time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	Schedule(e Event)
}

// A SimulationEndHandler is called once after the simulation ends.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// An Engine drives a discrete-event simulation.
//
// A queueing network perpetuates itself: every arrival schedules the next
// one. The engine therefore offers RunUntil and Step in addition to Run, so
// that a driver can stop at a time horizon or after a condition is met.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run processes events until no event is left.
	Run() error

	// RunUntil processes events up to and including time t. Events scheduled
	// after t remain in the queue. The current time is advanced to t.
	RunUntil(t VTimeInSec) error

	// Step processes the single next event. It returns the event processed,
	// or nil if the queue is empty.
	Step() (Event, error)

	// Pause pauses the simulation until Continue is called.
	Pause()

	// Continue continues a paused simulation.
	Continue()

	// RegisterSimulationEndHandler registers a handler that performs some
	// action after the simulation is finished.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished invokes all the registered SimulationEndHandlers.
	Finished()
}
