package forward_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/optlib/engine"
	"github.com/meenmo/optlib/forward"
	"github.com/meenmo/optlib/vanilla"
)

// identityEngine is a no-op delegate: it reports the underlying's plain
// level as the price and zero sensitivities. It isolates the decorator's
// discount/rebasing arithmetic from any pricing model.
type identityEngine struct {
	args    vanilla.Arguments
	results vanilla.Results
}

func (e *identityEngine) Arguments() *vanilla.Arguments { return &e.args }
func (e *identityEngine) Results() *vanilla.Results     { return &e.results }
func (e *identityEngine) Reset()                        { e.results.Reset() }

func (e *identityEngine) Calculate() error {
	e.results.Reset()
	e.results.Value = e.args.Underlying
	return nil
}

// stubEngine returns canned sensitivities, for checking the back-transform
// term by term.
type stubEngine struct {
	args    vanilla.Arguments
	results vanilla.Results
	canned  engine.Greeks
	err     error
}

func (e *stubEngine) Arguments() *vanilla.Arguments { return &e.args }
func (e *stubEngine) Results() *vanilla.Results     { return &e.results }
func (e *stubEngine) Reset()                        { e.results.Reset() }

func (e *stubEngine) Calculate() error {
	if e.err != nil {
		return e.err
	}
	e.results.Greeks = e.canned
	return nil
}

func TestNewRejectsNullDelegate(t *testing.T) {
	_, err := forward.New[*vanilla.Arguments, *vanilla.Results](nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "null delegate")
}

// brokenEngine exposes nil storage.
type brokenEngine struct{}

func (e *brokenEngine) Arguments() *vanilla.Arguments { return nil }
func (e *brokenEngine) Results() *vanilla.Results     { return nil }
func (e *brokenEngine) Reset()                        {}
func (e *brokenEngine) Calculate() error              { return nil }

func TestNewRejectsNilStorage(t *testing.T) {
	_, err := forward.New[*vanilla.Arguments, *vanilla.Results](&brokenEngine{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no arguments/results storage")
}

func TestIdentityDelegateReducesToDiscQ(t *testing.T) {
	delegate := &identityEngine{}
	fe, err := forward.New[*vanilla.Arguments, *vanilla.Results](delegate)
	require.NoError(t, err)

	*fe.Arguments() = validArguments()
	require.NoError(t, fe.Calculate())

	args := fe.Arguments()
	discQ := args.DividendTS.Discount(args.ResetDate)
	res := fe.Results()

	assert.Equal(t, discQ*args.Underlying, res.Value)
	assert.Zero(t, res.Gamma)
	assert.Zero(t, res.Vega)
	// Identity delegate has zero delta and strike sensitivity.
	assert.Zero(t, res.Delta)
}

func TestDeltaChainRule(t *testing.T) {
	const (
		delegateDelta     = 0.55
		strikeSensitivity = -0.40
		delegateValue     = 9.0
	)

	for _, moneyness := range []float64{0.8, 1.0, 1.25} {
		delegate := &stubEngine{canned: engine.Greeks{
			Value:             delegateValue,
			Delta:             delegateDelta,
			StrikeSensitivity: strikeSensitivity,
		}}
		fe, err := forward.New[*vanilla.Arguments, *vanilla.Results](delegate)
		require.NoError(t, err)

		args := validArguments()
		args.Moneyness = moneyness
		*fe.Arguments() = args
		require.NoError(t, fe.Calculate())

		discQ := args.DividendTS.Discount(args.ResetDate)
		want := discQ * (delegateDelta + moneyness*strikeSensitivity)
		assert.InDelta(t, want, fe.Results().Delta, 1e-12, "moneyness %v", moneyness)
	}
}

func TestPerformanceValueAtZeroResetTime(t *testing.T) {
	delegate := vanilla.NewAnalyticEuropeanEngine()

	// Plain vanilla reference value with the same market data and the
	// strike the projection will derive (moneyness x underlying).
	ref := vanilla.NewAnalyticEuropeanEngine()
	refArgs := validArguments()
	*ref.Arguments() = vanilla.Arguments{Option: refArgs.Option}
	ref.Arguments().Strike = refArgs.Moneyness * refArgs.Underlying
	require.NoError(t, ref.Calculate())

	fe, err := forward.NewPerformance[*vanilla.Arguments, *vanilla.Results](delegate)
	require.NoError(t, err)
	args := validArguments()
	args.ResetDate = evaluationDate // resetTime = 0
	*fe.Arguments() = args
	require.NoError(t, fe.Calculate())

	discR := args.RiskFreeTS.Discount(args.ResetDate) / args.Underlying
	assert.InDelta(t, discR*ref.Results().Value, fe.Results().Value, 1e-10)
	assert.Zero(t, fe.Results().Delta)
	assert.Zero(t, fe.Results().Gamma)
}

func TestCalculateIdempotent(t *testing.T) {
	for _, variant := range []string{"plain", "performance"} {
		t.Run(variant, func(t *testing.T) {
			delegate := vanilla.NewAnalyticEuropeanEngine()
			var fe *forward.Engine[*vanilla.Arguments, *vanilla.Results]
			var err error
			if variant == "plain" {
				fe, err = forward.New[*vanilla.Arguments, *vanilla.Results](delegate)
			} else {
				fe, err = forward.NewPerformance[*vanilla.Arguments, *vanilla.Results](delegate)
			}
			require.NoError(t, err)

			*fe.Arguments() = validArguments()
			require.NoError(t, fe.Calculate())
			first := *fe.Results()
			require.NoError(t, fe.Calculate())
			second := *fe.Results()
			require.NoError(t, fe.Calculate())
			third := *fe.Results()

			assert.Equal(t, first, second)
			assert.Equal(t, second, third)
		})
	}
}

func TestDelegateErrorPropagates(t *testing.T) {
	boom := errors.New("model blew up")
	delegate := &stubEngine{err: boom}
	fe, err := forward.New[*vanilla.Arguments, *vanilla.Results](delegate)
	require.NoError(t, err)

	*fe.Arguments() = validArguments()
	err = fe.Calculate()
	require.ErrorIs(t, err, boom)
}

func TestEndToEndAgainstAnalyticDelegate(t *testing.T) {
	delegate := vanilla.NewAnalyticEuropeanEngine()
	fe, err := forward.New[*vanilla.Arguments, *vanilla.Results](delegate)
	require.NoError(t, err)

	args := validArguments() // S=100, m=1, q=0.02, r=0.05, T=1, vol=0.2, reset at 0.5
	*fe.Arguments() = args
	require.NoError(t, fe.Calculate())

	res := fe.Results()
	discQ := args.DividendTS.Discount(args.ResetDate)
	resetTime := args.ResetTime(args.ResetDate)
	del := delegate.Results()

	// With flat curves the projected problem prices like the plain one:
	// the implied structures strip exactly the pre-reset accrual.
	assert.InDelta(t, 9.2270, del.Value, 1e-3)
	assert.InDelta(t, discQ*del.Value, res.Value, 1e-12)

	assert.InDelta(t, discQ*(del.Delta+args.Moneyness*del.StrikeSensitivity), res.Delta, 1e-12)
	assert.Zero(t, res.Gamma) // documented simplification
	assert.InDelta(t, args.DividendTS.ZeroYield(args.ResetDate)*res.Value, res.Theta, 1e-12)
	assert.InDelta(t, discQ*del.Vega, res.Vega, 1e-12)
	assert.InDelta(t, discQ*del.Rho, res.Rho, 1e-12)
	assert.InDelta(t, -resetTime*res.Value+discQ*del.DividendRho, res.DividendRho, 1e-12)

	// At moneyness 1 the delta collapses to discQ * value/S by Euler
	// homogeneity of the Black-Scholes price in (S, K).
	assert.InDelta(t, discQ*del.Value/args.Underlying, res.Delta, 1e-6)
	assert.Less(t, res.DividendRho, 0.0)
}
