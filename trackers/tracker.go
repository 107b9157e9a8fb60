// Package trackers implements state trackers. A tracker hooks into every
// node of a running simulation, maintains a compact view of the network
// state, and turns the resulting piecewise-constant state history into
// state probabilities over an observation window.
package trackers

import (
	"fmt"
	"sort"

	"github.com/MHowells/ciw/queueing"
	"github.com/MHowells/ciw/sim"
)

// A Tracker observes node hook invocations and keeps a state history. The
// state encoding is tracker specific.
type Tracker interface {
	sim.Hook

	// Name returns the name of the tracker.
	Name() string

	// StateKey returns the encoding of the current state.
	StateKey() string

	// StateProbabilities returns, for each state visited during the window
	// [start, end], the fraction of the window spent in it. Segments
	// straddling a window edge are clipped to the window.
	StateProbabilities(start, end sim.VTimeInSec) (map[string]float64, error)
}

type transition struct {
	at  sim.VTimeInSec
	key string
}

// history is the piecewise-constant state record shared by all trackers.
// The first transition is the initial state at time zero.
type history struct {
	transitions []transition
}

func newHistory(initialKey string) history {
	return history{
		transitions: []transition{{at: 0, key: initialKey}},
	}
}

func (h *history) record(now sim.VTimeInSec, key string) {
	last := &h.transitions[len(h.transitions)-1]
	if last.key == key {
		return
	}

	if last.at == now {
		// Zero-length segment, overwrite in place. Routing an individual
		// between nodes produces these at the hand-over instant.
		last.key = key

		prev := len(h.transitions) - 2
		if prev >= 0 && h.transitions[prev].key == key {
			h.transitions = h.transitions[:len(h.transitions)-1]
		}
		return
	}

	h.transitions = append(h.transitions, transition{at: now, key: key})
}

func (h *history) stateProbabilities(
	start, end sim.VTimeInSec,
) (map[string]float64, error) {
	if end <= start {
		return nil, fmt.Errorf(
			"observation window [%f, %f] is empty", start, end)
	}

	durations := make(map[string]float64)

	for i, tr := range h.transitions {
		segStart := tr.at
		segEnd := end
		if i+1 < len(h.transitions) {
			segEnd = h.transitions[i+1].at
		}

		if segStart < start {
			segStart = start
		}
		if segEnd > end {
			segEnd = end
		}
		if segEnd <= segStart {
			continue
		}

		durations[tr.key] += float64(segEnd - segStart)
	}

	window := float64(end - start)
	probs := make(map[string]float64, len(durations))
	for key, d := range durations {
		probs[key] = d / window
	}

	return probs, nil
}

// SortedStates returns the keys of a probability map in lexicographic
// order, for stable reporting.
func SortedStates(probs map[string]float64) []string {
	keys := make([]string, 0, len(probs))
	for k := range probs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func detailOf(ctx sim.HookCtx) (queueing.NodeHookDetail, bool) {
	if ctx.Pos != queueing.HookPosNodeAccept &&
		ctx.Pos != queueing.HookPosNodeRelease {
		return queueing.NodeHookDetail{}, false
	}

	detail, ok := ctx.Detail.(queueing.NodeHookDetail)
	return detail, ok
}
