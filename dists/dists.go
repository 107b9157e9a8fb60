// Package dists provides the inter-arrival and service time distributions
// that queueing networks are configured with.
//
// All distributions draw from the *rand.Rand passed in by the caller, never
// from a global source, so that a seeded simulation is reproducible.
package dists

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// A Distribution generates inter-arrival or service times.
type Distribution interface {
	fmt.Stringer

	// Sample draws a single value from the distribution.
	Sample(rng *rand.Rand) float64
}

// Deterministic always samples the same value.
type Deterministic struct {
	value float64
}

// NewDeterministic creates a Deterministic distribution. The value must not
// be negative.
func NewDeterministic(value float64) (Deterministic, error) {
	if value < 0 {
		return Deterministic{}, errors.New("deterministic value must not be negative")
	}

	return Deterministic{value: value}, nil
}

// Sample returns the fixed value.
func (d Deterministic) Sample(_ *rand.Rand) float64 {
	return d.value
}

func (d Deterministic) String() string {
	return fmt.Sprintf("Deterministic(%v)", d.value)
}

// Exponential samples from the exponential distribution with a given rate.
type Exponential struct {
	rate float64
}

// NewExponential creates an Exponential distribution. The rate must be
// positive.
func NewExponential(rate float64) (Exponential, error) {
	if rate <= 0 {
		return Exponential{}, errors.New("exponential rate must be positive")
	}

	return Exponential{rate: rate}, nil
}

// Rate returns the rate parameter.
func (d Exponential) Rate() float64 {
	return d.rate
}

// Sample draws from the exponential distribution.
func (d Exponential) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / d.rate
}

func (d Exponential) String() string {
	return fmt.Sprintf("Exponential(%v)", d.rate)
}

// Uniform samples uniformly between a lower and an upper bound.
type Uniform struct {
	lower, upper float64
}

// NewUniform creates a Uniform distribution on [lower, upper).
func NewUniform(lower, upper float64) (Uniform, error) {
	if lower < 0 {
		return Uniform{}, errors.New("uniform lower bound must not be negative")
	}
	if upper <= lower {
		return Uniform{}, errors.New("uniform upper bound must exceed the lower bound")
	}

	return Uniform{lower: lower, upper: upper}, nil
}

// Sample draws from the uniform distribution.
func (d Uniform) Sample(rng *rand.Rand) float64 {
	return d.lower + rng.Float64()*(d.upper-d.lower)
}

func (d Uniform) String() string {
	return fmt.Sprintf("Uniform(%v, %v)", d.lower, d.upper)
}

// Empirical resamples from a set of observed values.
type Empirical struct {
	observations []float64
}

// NewEmpirical creates an Empirical distribution from observed values.
func NewEmpirical(observations []float64) (Empirical, error) {
	if len(observations) == 0 {
		return Empirical{}, errors.New("empirical distribution needs at least one observation")
	}

	for _, o := range observations {
		if o < 0 {
			return Empirical{}, errors.New("empirical observations must not be negative")
		}
	}

	obs := make([]float64, len(observations))
	copy(obs, observations)

	return Empirical{observations: obs}, nil
}

// Sample picks one of the observations uniformly at random.
func (d Empirical) Sample(rng *rand.Rand) float64 {
	return d.observations[rng.Intn(len(d.observations))]
}

func (d Empirical) String() string {
	return fmt.Sprintf("Empirical(%d observations)", len(d.observations))
}

// Sequential cycles through a list of values in order. Sequential is
// stateful: every call to Sample advances the cursor.
type Sequential struct {
	values []float64
	cursor int
}

// NewSequential creates a Sequential distribution.
func NewSequential(values []float64) (*Sequential, error) {
	if len(values) == 0 {
		return nil, errors.New("sequential distribution needs at least one value")
	}

	for _, v := range values {
		if v < 0 {
			return nil, errors.New("sequential values must not be negative")
		}
	}

	vs := make([]float64, len(values))
	copy(vs, values)

	return &Sequential{values: vs}, nil
}

// Sample returns the next value in the sequence, wrapping around at the end.
func (d *Sequential) Sample(_ *rand.Rand) float64 {
	v := d.values[d.cursor]
	d.cursor = (d.cursor + 1) % len(d.values)
	return v
}

func (d *Sequential) String() string {
	return fmt.Sprintf("Sequential(%d values)", len(d.values))
}

// Pmf samples from a discrete probability mass function.
type Pmf struct {
	values []float64
	cumul  []float64
}

// NewPmf creates a Pmf distribution. The probabilities must sum to one.
func NewPmf(values, probs []float64) (Pmf, error) {
	if len(values) == 0 || len(values) != len(probs) {
		return Pmf{}, errors.New("pmf needs matching, non-empty values and probabilities")
	}

	total := 0.0
	cumul := make([]float64, len(probs))
	for i, p := range probs {
		if p < 0 || p > 1 {
			return Pmf{}, errors.New("pmf probabilities must be between 0 and 1")
		}
		if values[i] < 0 {
			return Pmf{}, errors.New("pmf values must not be negative")
		}

		total += p
		cumul[i] = total
	}

	if math.Abs(total-1) > 1e-9 {
		return Pmf{}, fmt.Errorf("pmf probabilities must sum to 1, got %v", total)
	}

	vs := make([]float64, len(values))
	copy(vs, values)

	return Pmf{values: vs, cumul: cumul}, nil
}

// Sample draws a value according to the probability mass function.
func (d Pmf) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	for i, c := range d.cumul {
		if u < c {
			return d.values[i]
		}
	}

	return d.values[len(d.values)-1]
}

func (d Pmf) String() string {
	return fmt.Sprintf("Pmf(%d values)", len(d.values))
}

// NoArrivals marks a node/class pair that receives no external arrivals.
type NoArrivals struct{}

// Sample panics. NoArrivals is a marker and must never be sampled; the
// arrival node skips node/class pairs that carry it.
func (d NoArrivals) Sample(_ *rand.Rand) float64 {
	panic("NoArrivals must not be sampled")
}

func (d NoArrivals) String() string {
	return "NoArrivals()"
}

// IsNoArrivals reports whether the distribution is the NoArrivals marker.
func IsNoArrivals(d Distribution) bool {
	if d == nil {
		return true
	}

	_, ok := d.(NoArrivals)
	return ok
}
