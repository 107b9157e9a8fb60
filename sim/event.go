package sim

// VTimeInSec is the virtual time inside the simulated queueing network, in
// the unit of second.
type VTimeInSec float64

// An Event is something that will happen in the simulated future, such as a
// customer arrival or a service completion.
type Event interface {
	// Time returns the time at which the event takes place.
	Time() VTimeInSec

	// Handler returns the handler that processes the event.
	Handler() Handler

	// IsSecondary tells if the event is a secondary event. Secondary events
	// are handled after all the same-time primary events are handled. State
	// trackers and recorders use secondary events so that they observe the
	// network after every same-time state change has been applied.
	IsSecondary() bool
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	ID        string
	time      VTimeInSec
	handler   Handler
	secondary bool
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	e := new(EventBase)
	e.ID = GetIDGenerator().Generate()
	e.time = t
	e.handler = handler
	e.secondary = false
	return e
}

// MakeEventBase creates an EventBase as a value, for event types that embed
// the base directly.
func MakeEventBase(t VTimeInSec, handler Handler) EventBase {
	return EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns the time at which the event takes place.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler that processes the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// IsSecondary returns true if the event is a secondary event.
func (e EventBase) IsSecondary() bool {
	return e.secondary
}

// MakeSecondary marks the event as a secondary event.
func (e *EventBase) MakeSecondary() {
	e.secondary = true
}

// A Handler defines a domain for events.
//
// An event is always constrained to one handler. A queueing node only
// schedules events for itself, so that the node stays the single writer of
// its own state. The one exception is the simulation kick-off, where the
// driver schedules the initial arrival events.
type Handler interface {
	Handle(e Event) error
}
