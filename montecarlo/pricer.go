package montecarlo

import (
	"math"

	"github.com/meenmo/optlib/option"
)

// PathPricer evaluates the discounted payoff of one sampled path.
type PathPricer interface {
	Value(p Path) float64
}

// EuropeanPathPricer evaluates a European payoff at the path's terminal
// level. With antithetic sampling enabled, each path is averaged with its
// diffusion-mirrored twin, which reuses the drift and halves the variance
// of the estimate for smooth payoffs.
type EuropeanPathPricer struct {
	typ        option.Type
	underlying float64
	strike     float64
	discount   float64
	antithetic bool
}

func NewEuropeanPathPricer(typ option.Type, underlying, strike, discount float64, antithetic bool) *EuropeanPathPricer {
	return &EuropeanPathPricer{
		typ:        typ,
		underlying: underlying,
		strike:     strike,
		discount:   discount,
		antithetic: antithetic,
	}
}

func (p *EuropeanPathPricer) Value(path Path) float64 {
	logDrift, logDiffusion := 0.0, 0.0
	for i := 0; i < path.Steps(); i++ {
		logDrift += path.Drift[i]
		logDiffusion += path.Diffusion[i]
	}

	terminal := p.underlying * math.Exp(logDrift+logDiffusion)
	payoff := p.discount * p.typ.Payoff(terminal, p.strike)
	if !p.antithetic {
		return payoff
	}

	mirrored := p.underlying * math.Exp(logDrift-logDiffusion)
	return 0.5 * (payoff + p.discount*p.typ.Payoff(mirrored, p.strike))
}
