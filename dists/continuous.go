package dists

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// The continuous laws below sample by inverse transform: a single uniform
// draw from the simulation's RNG stream is pushed through the quantile
// function. This keeps the stream consumption per sample constant, which in
// turn keeps common-random-number comparisons between configurations valid.

func sampleQuantile(rng *rand.Rand, q interface{ Quantile(float64) float64 }) float64 {
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64
	}

	return q.Quantile(u)
}

// Gamma samples from the gamma distribution with a shape and scale
// parameter.
type Gamma struct {
	dist distuv.Gamma
}

// NewGamma creates a Gamma distribution. Shape and scale must be positive.
func NewGamma(shape, scale float64) (Gamma, error) {
	if shape <= 0 || scale <= 0 {
		return Gamma{}, errors.New("gamma shape and scale must be positive")
	}

	return Gamma{dist: distuv.Gamma{Alpha: shape, Beta: 1 / scale}}, nil
}

// Sample draws from the gamma distribution.
func (d Gamma) Sample(rng *rand.Rand) float64 {
	return sampleQuantile(rng, d.dist)
}

func (d Gamma) String() string {
	return fmt.Sprintf("Gamma(%v, %v)", d.dist.Alpha, 1/d.dist.Beta)
}

// Lognormal samples from the log-normal distribution parameterised by the
// mean and standard deviation of the underlying normal.
type Lognormal struct {
	dist distuv.LogNormal
}

// NewLognormal creates a Lognormal distribution. Sigma must be positive.
func NewLognormal(mu, sigma float64) (Lognormal, error) {
	if sigma <= 0 {
		return Lognormal{}, errors.New("lognormal sigma must be positive")
	}

	return Lognormal{dist: distuv.LogNormal{Mu: mu, Sigma: sigma}}, nil
}

// Sample draws from the log-normal distribution.
func (d Lognormal) Sample(rng *rand.Rand) float64 {
	return sampleQuantile(rng, d.dist)
}

func (d Lognormal) String() string {
	return fmt.Sprintf("Lognormal(%v, %v)", d.dist.Mu, d.dist.Sigma)
}

// Weibull samples from the Weibull distribution with a shape and scale
// parameter.
type Weibull struct {
	dist distuv.Weibull
}

// NewWeibull creates a Weibull distribution. Shape and scale must be
// positive.
func NewWeibull(shape, scale float64) (Weibull, error) {
	if shape <= 0 || scale <= 0 {
		return Weibull{}, errors.New("weibull shape and scale must be positive")
	}

	return Weibull{dist: distuv.Weibull{K: shape, Lambda: scale}}, nil
}

// Sample draws from the Weibull distribution.
func (d Weibull) Sample(rng *rand.Rand) float64 {
	return sampleQuantile(rng, d.dist)
}

func (d Weibull) String() string {
	return fmt.Sprintf("Weibull(%v, %v)", d.dist.K, d.dist.Lambda)
}

// Normal samples from the normal distribution truncated at zero. Negative
// draws are resampled, so the effective law is the normal conditioned on
// being non-negative.
type Normal struct {
	mean, std float64
}

// NewNormal creates a truncated Normal distribution. Std must be positive.
func NewNormal(mean, std float64) (Normal, error) {
	if std <= 0 {
		return Normal{}, errors.New("normal standard deviation must be positive")
	}

	return Normal{mean: mean, std: std}, nil
}

// Sample draws from the truncated normal distribution.
func (d Normal) Sample(rng *rand.Rand) float64 {
	for {
		v := rng.NormFloat64()*d.std + d.mean
		if v >= 0 {
			return v
		}
	}
}

func (d Normal) String() string {
	return fmt.Sprintf("Normal(%v, %v)", d.mean, d.std)
}

// Triangular samples from the triangular distribution with a lower bound,
// mode, and upper bound.
type Triangular struct {
	lower, mode, upper float64
	dist               distuv.Triangle
}

// NewTriangular creates a Triangular distribution. The parameters must
// satisfy 0 <= lower <= mode <= upper and lower < upper.
func NewTriangular(lower, mode, upper float64) (Triangular, error) {
	if lower < 0 {
		return Triangular{}, errors.New("triangular lower bound must not be negative")
	}
	if lower > mode || mode > upper || lower >= upper {
		return Triangular{}, errors.New(
			"triangular parameters must satisfy lower <= mode <= upper, lower < upper")
	}

	return Triangular{
		lower: lower,
		mode:  mode,
		upper: upper,
		dist:  distuv.NewTriangle(lower, upper, mode, nil),
	}, nil
}

// Sample draws from the triangular distribution.
func (d Triangular) Sample(rng *rand.Rand) float64 {
	return sampleQuantile(rng, d.dist)
}

func (d Triangular) String() string {
	return fmt.Sprintf("Triangular(%v, %v, %v)", d.lower, d.mode, d.upper)
}
