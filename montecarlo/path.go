// Package montecarlo assembles a one-factor Monte Carlo option pricer from
// three orthogonal pieces: a path generator, a path-dependent payoff
// evaluator and a running-statistics accumulator.
package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Path is one sampled trajectory of log-increments, with the deterministic
// drift and the random diffusion kept apart so antithetic sampling can flip
// the diffusion alone.
type Path struct {
	Drift     []float64
	Diffusion []float64
}

// Steps returns the number of increments on the path.
func (p Path) Steps() int { return len(p.Drift) }

// PathGenerator produces sample paths.
type PathGenerator interface {
	Next() Path
}

// GaussianPathGenerator draws paths of a Brownian motion with constant
// drift and variance over a fixed horizon. Equal seeds reproduce equal
// path sequences.
type GaussianPathGenerator struct {
	drift  float64 // per-step drift contribution
	stdDev float64 // per-step diffusion scale
	steps  int
	normal distuv.Normal
}

// NewGaussianPathGenerator builds a generator for the given total drift
// rate and variance rate (both per unit time), horizon in years, number of
// time steps and random seed.
func NewGaussianPathGenerator(mu, variance, horizon float64, steps int, seed uint64) *GaussianPathGenerator {
	if steps < 1 {
		steps = 1
	}
	dt := horizon / float64(steps)
	return &GaussianPathGenerator{
		drift:  mu * dt,
		stdDev: math.Sqrt(variance * dt),
		steps:  steps,
		normal: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)},
	}
}

// Next draws a fresh path.
func (g *GaussianPathGenerator) Next() Path {
	p := Path{
		Drift:     make([]float64, g.steps),
		Diffusion: make([]float64, g.steps),
	}
	for i := 0; i < g.steps; i++ {
		p.Drift[i] = g.drift
		p.Diffusion[i] = g.stdDev * g.normal.Rand()
	}
	return p
}
