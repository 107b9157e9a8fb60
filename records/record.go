// Package records collects the per-service data records that a simulation
// produces, and optionally persists them to SQLite.
package records

import (
	"sync"

	"github.com/MHowells/ciw/sim"
)

// Record types.
const (
	TypeService   = "service"
	TypeRejection = "rejection"
)

// A Record describes one service episode of one individual at one node, or
// the rejection of an individual by a full node.
type Record struct {
	IndividualID         int64
	Class                string
	Node                 int
	ArrivalDate          sim.VTimeInSec
	WaitingTime          sim.VTimeInSec
	ServiceStartDate     sim.VTimeInSec
	ServiceTime          sim.VTimeInSec
	ServiceEndDate       sim.VTimeInSec
	ExitDate             sim.VTimeInSec
	Destination          int
	QueueSizeAtArrival   int
	QueueSizeAtDeparture int
	RecordType           string
}

// A Collector accumulates records in memory, optionally mirroring them into
// a DataRecorder backend.
type Collector struct {
	mu      sync.Mutex
	records []Record
	backend DataRecorder
}

// RecordTable is the table name used when mirroring into a backend.
const RecordTable = "records"

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// MirrorTo makes the collector mirror every record into the given backend.
// The backing table is created immediately.
func (c *Collector) MirrorTo(backend DataRecorder) {
	c.mu.Lock()
	defer c.mu.Unlock()

	backend.CreateTable(RecordTable, Record{})
	c.backend = backend
}

// Add appends a record.
func (c *Collector) Add(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, rec)

	if c.backend != nil {
		c.backend.InsertData(RecordTable, rec)
	}
}

// All returns a copy of all records collected so far.
func (c *Collector) All() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.records)
}

// Filter returns the records that satisfy the predicate.
func (c *Collector) Filter(keep func(Record) bool) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Record
	for _, r := range c.records {
		if keep(r) {
			out = append(out, r)
		}
	}

	return out
}
