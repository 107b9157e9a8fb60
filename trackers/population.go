package trackers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MHowells/ciw/queueing"
	"github.com/MHowells/ciw/sim"
)

// SystemPopulation tracks the total number of individuals in the network.
// States are encoded as the population count, "0", "1", "2", ...
type SystemPopulation struct {
	history

	count int
}

// NewSystemPopulation creates a SystemPopulation tracker for an empty
// network.
func NewSystemPopulation() *SystemPopulation {
	return &SystemPopulation{history: newHistory("0")}
}

// Name returns the name of the tracker.
func (t *SystemPopulation) Name() string {
	return "SystemPopulation"
}

// Func updates the population on node accept and release hooks.
func (t *SystemPopulation) Func(ctx sim.HookCtx) {
	detail, ok := detailOf(ctx)
	if !ok {
		return
	}

	switch ctx.Pos {
	case queueing.HookPosNodeAccept:
		t.count++
	case queueing.HookPosNodeRelease:
		t.count--
	}

	t.record(detail.Now, t.StateKey())
}

// StateKey returns the current population as a string.
func (t *SystemPopulation) StateKey() string {
	return strconv.Itoa(t.count)
}

// StateProbabilities returns the fraction of the window spent at each
// population.
func (t *SystemPopulation) StateProbabilities(
	start, end sim.VTimeInSec,
) (map[string]float64, error) {
	return t.stateProbabilities(start, end)
}

// NodePopulation tracks the population of every node separately. States
// are encoded as tuples, "(2, 0, 1)".
type NodePopulation struct {
	history

	counts []int
}

// NewNodePopulation creates a NodePopulation tracker for a network of
// numNodes empty nodes.
func NewNodePopulation(numNodes int) *NodePopulation {
	t := &NodePopulation{counts: make([]int, numNodes)}
	t.history = newHistory(tupleKey(t.counts))
	return t
}

// Name returns the name of the tracker.
func (t *NodePopulation) Name() string {
	return "NodePopulation"
}

// Func updates the per-node population on accept and release hooks.
func (t *NodePopulation) Func(ctx sim.HookCtx) {
	detail, ok := detailOf(ctx)
	if !ok {
		return
	}

	switch ctx.Pos {
	case queueing.HookPosNodeAccept:
		t.counts[detail.Node-1]++
	case queueing.HookPosNodeRelease:
		t.counts[detail.Node-1]--
	}

	t.record(detail.Now, t.StateKey())
}

// StateKey returns the current per-node populations as a tuple.
func (t *NodePopulation) StateKey() string {
	return tupleKey(t.counts)
}

// StateProbabilities returns the fraction of the window spent in each
// per-node population vector.
func (t *NodePopulation) StateProbabilities(
	start, end sim.VTimeInSec,
) (map[string]float64, error) {
	return t.stateProbabilities(start, end)
}

// NodeClassMatrix tracks, for every node, the population of every class.
// States are encoded as a tuple of tuples, "((1, 0), (0, 2))".
type NodeClassMatrix struct {
	history

	classIndex map[string]int
	counts     [][]int
}

// NewNodeClassMatrix creates a NodeClassMatrix tracker. The classes slice
// fixes the class order in the encoding.
func NewNodeClassMatrix(numNodes int, classes []string) *NodeClassMatrix {
	t := &NodeClassMatrix{
		classIndex: make(map[string]int, len(classes)),
		counts:     make([][]int, numNodes),
	}

	for i, c := range classes {
		t.classIndex[c] = i
	}

	for i := range t.counts {
		t.counts[i] = make([]int, len(classes))
	}

	t.history = newHistory(t.StateKey())

	return t
}

// Name returns the name of the tracker.
func (t *NodeClassMatrix) Name() string {
	return "NodeClassMatrix"
}

// Func updates the node/class counts on accept and release hooks.
func (t *NodeClassMatrix) Func(ctx sim.HookCtx) {
	detail, ok := detailOf(ctx)
	if !ok {
		return
	}

	class, ok := t.classIndex[detail.Class]
	if !ok {
		return
	}

	switch ctx.Pos {
	case queueing.HookPosNodeAccept:
		t.counts[detail.Node-1][class]++
	case queueing.HookPosNodeRelease:
		t.counts[detail.Node-1][class]--
	}

	t.record(detail.Now, t.StateKey())
}

// StateKey returns the current node/class counts as a tuple of tuples.
func (t *NodeClassMatrix) StateKey() string {
	parts := make([]string, len(t.counts))
	for i, row := range t.counts {
		parts[i] = tupleKey(row)
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// StateProbabilities returns the fraction of the window spent in each
// node/class matrix.
func (t *NodeClassMatrix) StateProbabilities(
	start, end sim.VTimeInSec,
) (map[string]float64, error) {
	return t.stateProbabilities(start, end)
}

func tupleKey(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
