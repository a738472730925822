package vanilla

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/optlib/option"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// AnalyticEuropeanEngine prices European options with the
// Black-Scholes-Merton closed form, reading discount factors and Black
// variance off the term structures in the arguments record.
type AnalyticEuropeanEngine struct {
	args    Arguments
	results Results
}

func NewAnalyticEuropeanEngine() *AnalyticEuropeanEngine {
	return &AnalyticEuropeanEngine{}
}

func (e *AnalyticEuropeanEngine) Arguments() *Arguments { return &e.args }
func (e *AnalyticEuropeanEngine) Results() *Results     { return &e.results }
func (e *AnalyticEuropeanEngine) Reset()                { e.results.Reset() }

func (e *AnalyticEuropeanEngine) Calculate() error {
	a := &e.args
	if err := a.Validate(); err != nil {
		return fmt.Errorf("vanilla.AnalyticEuropeanEngine.Calculate: %w", err)
	}
	if a.Exercise != option.European {
		return fmt.Errorf("vanilla.AnalyticEuropeanEngine.Calculate: %s exercise not supported", a.Exercise)
	}

	S, K, T := a.Underlying, a.Strike, a.Maturity
	dfR := a.RiskFreeTS.DiscountTime(T)
	dfQ := a.DividendTS.DiscountTime(T)
	variance := a.VolTS.BlackVarianceTime(T, K)
	r := -math.Log(dfR) / T
	q := -math.Log(dfQ) / T

	res := &e.results.Greeks
	res.Reset()

	stdDev := math.Sqrt(variance)
	if stdDev <= 0 {
		// Deterministic limit: discounted intrinsic on the forward.
		forward := S * dfQ / dfR
		res.Value = dfR * a.Type.Payoff(forward, K)
		if a.Type.Payoff(forward, K) > 0 {
			res.Delta = float64(a.Type) * dfQ
			res.StrikeSensitivity = -float64(a.Type) * dfR
		}
		return nil
	}

	sqrtT := math.Sqrt(T)
	sigma := stdDev / sqrtT
	d1 := (math.Log(S/K)+(r-q)*T)/stdDev + 0.5*stdDev
	d2 := d1 - stdDev
	nd1 := stdNormal.Prob(d1) // density

	switch a.Type {
	case option.Call:
		cd1 := stdNormal.CDF(d1)
		cd2 := stdNormal.CDF(d2)
		res.Value = S*dfQ*cd1 - K*dfR*cd2
		res.Delta = dfQ * cd1
		res.Theta = -S*dfQ*nd1*sigma/(2*sqrtT) - r*K*dfR*cd2 + q*S*dfQ*cd1
		res.Rho = K * T * dfR * cd2
		res.DividendRho = -S * T * dfQ * cd1
		res.StrikeSensitivity = -dfR * cd2
	case option.Put:
		cmd1 := stdNormal.CDF(-d1)
		cmd2 := stdNormal.CDF(-d2)
		res.Value = K*dfR*cmd2 - S*dfQ*cmd1
		res.Delta = -dfQ * cmd1
		res.Theta = -S*dfQ*nd1*sigma/(2*sqrtT) + r*K*dfR*cmd2 - q*S*dfQ*cmd1
		res.Rho = -K * T * dfR * cmd2
		res.DividendRho = S * T * dfQ * cmd1
		res.StrikeSensitivity = dfR * cmd2
	}
	res.Gamma = dfQ * nd1 / (S * stdDev)
	res.Vega = S * dfQ * nd1 * sqrtT

	return nil
}
