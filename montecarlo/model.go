package montecarlo

import (
	"fmt"
	"math"

	"github.com/meenmo/optlib/option"
)

// Model composes a path generator, a path pricer and a statistics
// accumulator into a sampling loop. It holds no state of its own beyond the
// three components.
type Model struct {
	generator PathGenerator
	pricer    PathPricer
	stats     *Statistics
}

func NewModel(generator PathGenerator, pricer PathPricer, stats *Statistics) (*Model, error) {
	if generator == nil {
		return nil, fmt.Errorf("montecarlo.NewModel: null path generator")
	}
	if pricer == nil {
		return nil, fmt.Errorf("montecarlo.NewModel: null path pricer")
	}
	if stats == nil {
		return nil, fmt.Errorf("montecarlo.NewModel: null statistics accumulator")
	}
	return &Model{generator: generator, pricer: pricer, stats: stats}, nil
}

// AddSamples draws n fresh paths and feeds their payoffs to the
// accumulator.
func (m *Model) AddSamples(n int) {
	for i := 0; i < n; i++ {
		m.stats.Add(m.pricer.Value(m.generator.Next()))
	}
}

// SampleAccumulator exposes the accumulated statistics.
func (m *Model) SampleAccumulator() *Statistics { return m.stats }

// McEuropean is the assembled single-factor Monte Carlo European pricer:
// constructor wiring only, the sampling loop lives in Model.
type McEuropean struct {
	model *Model
}

// NewMcEuropean wires a geometric-Brownian path generator, a European path
// pricer and a fresh accumulator. The generator runs over a single time
// step with risk-neutral drift; the payoff is discounted at the risk-free
// rate over the residual time.
func NewMcEuropean(typ option.Type, underlying, strike, dividendYield, riskFreeRate,
	residualTime, volatility float64, antitheticVariance bool, seed uint64) (*McEuropean, error) {
	if underlying <= 0 {
		return nil, fmt.Errorf("montecarlo.NewMcEuropean: non-positive underlying (%v)", underlying)
	}
	if strike <= 0 {
		return nil, fmt.Errorf("montecarlo.NewMcEuropean: non-positive strike (%v)", strike)
	}
	if residualTime <= 0 {
		return nil, fmt.Errorf("montecarlo.NewMcEuropean: non-positive residual time (%v)", residualTime)
	}
	if volatility < 0 {
		return nil, fmt.Errorf("montecarlo.NewMcEuropean: negative volatility (%v)", volatility)
	}

	mu := riskFreeRate - dividendYield - 0.5*volatility*volatility
	generator := NewGaussianPathGenerator(mu, volatility*volatility, residualTime, 1, seed)
	pricer := NewEuropeanPathPricer(typ, underlying, strike,
		math.Exp(-riskFreeRate*residualTime), antitheticVariance)

	model, err := NewModel(generator, pricer, NewStatistics())
	if err != nil {
		return nil, err
	}
	return &McEuropean{model: model}, nil
}

// Value draws the given number of samples and returns the price estimate.
func (p *McEuropean) Value(samples int) float64 {
	p.model.AddSamples(samples)
	return p.model.SampleAccumulator().Mean()
}

// ErrorEstimate returns the standard error of the accumulated estimate.
func (p *McEuropean) ErrorEstimate() float64 {
	return p.model.SampleAccumulator().ErrorEstimate()
}
