package forward

import (
	"fmt"
	"reflect"

	"github.com/meenmo/optlib/curve"
	"github.com/meenmo/optlib/engine"
	"github.com/meenmo/optlib/vol"
)

// Variant selects how the delegate's output is reinterpreted.
type Variant int

const (
	// Plain pays off against the absolute level of the underlying.
	Plain Variant = iota
	// Performance pays off as a ratio of the underlying's level at the
	// reset date, so the delegate price is rescaled per unit of initial
	// underlying.
	Performance
)

// Engine prices a forward-starting option by decorating a delegate engine
// built for the plain problem: on every call it projects the forward
// problem onto an equivalent one as seen from the reset date, lets the
// delegate solve that, and back-transforms the delegate's sensitivities.
//
// The delegate's argument and result storage is bound once at construction
// and mutated in place on every call. An Engine therefore exclusively owns
// its delegate while Calculate runs; sharing a delegate between wrappers
// needs external serialization.
type Engine[A engine.OptionArguments, R engine.Results] struct {
	delegate engine.Engine[A, R]
	origArgs A
	origRes  R
	variant  Variant

	args    Arguments
	results engine.Greeks
}

// New decorates delegate with the plain forward-start transform.
func New[A engine.OptionArguments, R engine.Results](delegate engine.Engine[A, R]) (*Engine[A, R], error) {
	return newEngine(delegate, Plain)
}

// NewPerformance decorates delegate with the performance-option transform.
// Unlike the plain variant its Calculate does not reset the delegate
// between calls; that is safe because the projection overwrites every field
// the delegate reads.
func NewPerformance[A engine.OptionArguments, R engine.Results](delegate engine.Engine[A, R]) (*Engine[A, R], error) {
	return newEngine(delegate, Performance)
}

func newEngine[A engine.OptionArguments, R engine.Results](delegate engine.Engine[A, R], v Variant) (*Engine[A, R], error) {
	if delegate == nil {
		return nil, fmt.Errorf("forward.New: null delegate engine")
	}
	e := &Engine[A, R]{delegate: delegate, variant: v}
	e.origArgs = delegate.Arguments()
	e.origRes = delegate.Results()
	if isNil(e.origArgs) || isNil(e.origRes) {
		return nil, fmt.Errorf("forward.New: delegate engine exposes no arguments/results storage")
	}
	return e, nil
}

// isNil catches typed-nil pointers behind the generic parameters.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func (e *Engine[A, R]) Arguments() *Arguments   { return &e.args }
func (e *Engine[A, R]) Results() *engine.Greeks { return &e.results }
func (e *Engine[A, R]) Reset()                  { e.results.Reset() }

// Calculate runs the pipeline strictly in order: reset the delegate (plain
// variant only), project the arguments, let the delegate compute, then
// back-transform its results. Delegate errors surface unchanged; on any
// failure the results record is not to be consumed.
func (e *Engine[A, R]) Calculate() error {
	if err := e.args.Validate(); err != nil {
		return err
	}
	if e.variant == Plain {
		e.delegate.Reset()
	}
	if err := e.setOriginalArguments(); err != nil {
		return err
	}
	if err := e.delegate.Calculate(); err != nil {
		return err
	}
	e.getOriginalResults()
	return nil
}

// setOriginalArguments projects the forward problem onto the equivalent
// plain problem at time zero of the reset period: curves are re-based at
// the reset date so that the delegate's own forward/discount math encodes
// the forward start, and the strike becomes moneyness times the underlying.
func (e *Engine[A, R]) setOriginalArguments() error {
	src := &e.args
	dst := e.origArgs.OptionRef()

	dst.Type = src.Type
	// The spot level is passed through as-is; the right level is needed for
	// the delegate to interpolate the vol surface.
	dst.Underlying = src.Underlying
	dst.Strike = src.Moneyness * src.Underlying
	dst.DividendTS = curve.NewImplied(src.DividendTS, src.ResetDate)
	dst.RiskFreeTS = curve.NewImplied(src.RiskFreeTS, src.ResetDate)
	// Correct while the vol is at most time-dependent; with an asset-level
	// dependent smile this anchoring is an approximation.
	dst.VolTS = vol.NewImplied(src.VolTS, src.ResetDate)
	dst.Exercise = src.Exercise
	dst.StoppingTimes = src.StoppingTimes
	dst.Maturity = src.Maturity

	if err := e.origArgs.Validate(); err != nil {
		return fmt.Errorf("forward.Engine.Calculate: projected arguments invalid: %w", err)
	}
	return nil
}

// getOriginalResults reinterprets the delegate's plain-option figures as
// forward-option figures.
func (e *Engine[A, R]) getOriginalResults() {
	src := e.origRes.GreeksRef()
	args := &e.args
	resetTime := args.ResetTime(args.ResetDate)
	e.results.Reset()

	switch e.variant {
	case Plain:
		discQ := args.DividendTS.Discount(args.ResetDate)
		e.results.Value = discQ * src.Value
		// The delegate's strike is itself a function of the underlying
		// (moneyness x spot), so the full delta picks up the chain-rule
		// term through the strike sensitivity.
		e.results.Delta = discQ * (src.Delta + args.Moneyness*src.StrikeSensitivity)
		e.results.Gamma = 0 // curvature through the strike term is not computed
		e.results.Theta = args.DividendTS.ZeroYield(args.ResetDate) * e.results.Value
		e.results.Vega = discQ * src.Vega
		e.results.Rho = discQ * src.Rho
		e.results.DividendRho = -resetTime*e.results.Value + discQ*src.DividendRho

	case Performance:
		// Rescaled per unit of initial underlying: this turns the
		// absolute-payoff price into a performance-ratio price.
		discR := args.RiskFreeTS.Discount(args.ResetDate) / args.Underlying
		e.results.Value = discR * src.Value
		e.results.Delta = 0 // insensitive to the spot level once rescaled
		e.results.Gamma = 0
		e.results.Theta = args.RiskFreeTS.ZeroYield(args.ResetDate) * e.results.Value
		e.results.Vega = discR * src.Vega
		e.results.Rho = -resetTime*e.results.Value + discR*src.Rho
		e.results.DividendRho = discR * src.DividendRho
	}
}
