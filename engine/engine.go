// Package engine defines the generic contract between a pricing problem
// description (arguments), its computed output (results) and the engine
// that turns one into the other.
//
// Engines own their argument and result storage: callers fill the arguments
// record in place, call Calculate, then read the results record in place.
// Decorating engines bind to that storage once at construction and mutate
// it on every call, so a delegate engine must not be shared between
// wrappers without external serialization.
package engine

import (
	"fmt"
	"time"

	"github.com/meenmo/optlib/curve"
	"github.com/meenmo/optlib/option"
	"github.com/meenmo/optlib/utils"
	"github.com/meenmo/optlib/vol"
)

// Arguments is the minimal contract of a problem description: it can reject
// an inconsistent configuration before any engine consumes it.
type Arguments interface {
	Validate() error
}

// Results is the minimal contract of a results record: it exposes the
// common sensitivity block and can be wiped between runs.
type Results interface {
	Reset()
	GreeksRef() *Greeks
}

// Engine computes a results record from a filled-in arguments record.
// A and R are the concrete (pointer) shapes of the engine's own mutable
// storage.
type Engine[A Arguments, R Results] interface {
	Arguments() A
	Results() R
	Reset()
	Calculate() error
}

// Greeks is the sensitivity block shared by every results record: price
// plus first-order sensitivities. StrikeSensitivity is carried because
// strike-resetting decorators need it for the delta chain rule.
type Greeks struct {
	Value             float64
	Delta             float64
	Gamma             float64
	Theta             float64
	Vega              float64
	Rho               float64
	DividendRho       float64
	StrikeSensitivity float64
}

// Reset wipes the record. A decorator resets its delegate through this
// before reuse so stale figures never leak across calls.
func (g *Greeks) Reset() { *g = Greeks{} }

// GreeksRef lets Greeks stand alone as a results record.
func (g *Greeks) GreeksRef() *Greeks { return g }

// Option is the base arguments block shared by the one-asset option
// families: payoff terms, the three market curves and the exercise
// schedule. Maturity and stopping times are year fractions on the
// risk-free curve's day count.
type Option struct {
	Type          option.Type
	Underlying    float64
	Strike        float64
	DividendTS    curve.TermStructure
	RiskFreeTS    curve.TermStructure
	VolTS         vol.TermStructure
	Exercise      option.Exercise
	StoppingTimes []float64
	Maturity      float64
}

// OptionArguments is the capability a decorating engine needs from a
// delegate's arguments record: base validation plus mutable access to the
// embedded option block.
type OptionArguments interface {
	Arguments
	OptionRef() *Option
}

// OptionRef lets Option satisfy OptionArguments when embedded.
func (o *Option) OptionRef() *Option { return o }

// Validate rejects an incomplete or inconsistent base record.
func (o *Option) Validate() error {
	if !o.Type.Valid() {
		return fmt.Errorf("engine.Option.Validate: unknown option type")
	}
	if o.Underlying <= 0 {
		return fmt.Errorf("engine.Option.Validate: non-positive underlying (%v)", o.Underlying)
	}
	if o.Strike <= 0 {
		return fmt.Errorf("engine.Option.Validate: non-positive strike (%v)", o.Strike)
	}
	if o.DividendTS == nil {
		return fmt.Errorf("engine.Option.Validate: dividend term structure is required")
	}
	if o.RiskFreeTS == nil {
		return fmt.Errorf("engine.Option.Validate: risk-free term structure is required")
	}
	if o.VolTS == nil {
		return fmt.Errorf("engine.Option.Validate: volatility term structure is required")
	}
	if !o.Exercise.Valid() {
		return fmt.Errorf("engine.Option.Validate: unknown exercise type")
	}
	if o.Maturity <= 0 {
		return fmt.Errorf("engine.Option.Validate: non-positive maturity (%v)", o.Maturity)
	}
	return nil
}

// ResetTime is the year fraction from the risk-free curve's reference date
// to the given date, on that curve's day count.
func (o *Option) ResetTime(d time.Time) float64 {
	if o.RiskFreeTS == nil {
		return 0
	}
	ref := o.RiskFreeTS.ReferenceDate()
	return utils.YearFraction(ref, d, o.RiskFreeTS.DayCount())
}
