// Package vol provides Black volatility term structures and the implied
// (forward-anchored) wrapper used by the forward-start engines.
package vol

import (
	"math"
	"time"

	"github.com/meenmo/optlib/utils"
)

// TermStructure quotes Black volatilities and variances by maturity and
// strike. BlackVarianceTime takes a year fraction from the reference date on
// the structure's own day count.
type TermStructure interface {
	ReferenceDate() time.Time
	DayCount() string
	BlackVol(d time.Time, strike float64) float64
	BlackVariance(d time.Time, strike float64) float64
	BlackVarianceTime(t, strike float64) float64
}

// BlackConstantVol is a flat Black volatility surface.
type BlackConstantVol struct {
	reference time.Time
	vol       float64
	dayCount  string
}

func NewBlackConstantVol(reference time.Time, vol float64) *BlackConstantVol {
	return &BlackConstantVol{reference: reference, vol: vol, dayCount: utils.DefaultDayCount}
}

func (v *BlackConstantVol) ReferenceDate() time.Time { return v.reference }
func (v *BlackConstantVol) DayCount() string         { return v.dayCount }

func (v *BlackConstantVol) BlackVol(d time.Time, strike float64) float64 {
	return v.vol
}

func (v *BlackConstantVol) BlackVariance(d time.Time, strike float64) float64 {
	return v.BlackVarianceTime(utils.YearFraction(v.reference, d, v.dayCount), strike)
}

func (v *BlackConstantVol) BlackVarianceTime(t, strike float64) float64 {
	if t <= 0 {
		return 0
	}
	return v.vol * v.vol * t
}

// Implied is a Black vol structure anchored at a future date: the variance
// accumulated up to the anchor is stripped out, leaving the forward
// variance base.Var(anchor+t) - base.Var(anchor).
//
// This substitution is exact only while the base volatility is at most
// time-dependent. Under a genuine strike-dependent smile it is an
// approximation: the correct treatment would need a local or stochastic
// volatility model.
type Implied struct {
	base      TermStructure
	reference time.Time
	offset    float64 // year fraction from base reference to anchor
}

func NewImplied(base TermStructure, reference time.Time) *Implied {
	return &Implied{
		base:      base,
		reference: reference,
		offset:    utils.YearFraction(base.ReferenceDate(), reference, base.DayCount()),
	}
}

func (v *Implied) ReferenceDate() time.Time { return v.reference }
func (v *Implied) DayCount() string         { return v.base.DayCount() }

func (v *Implied) BlackVarianceTime(t, strike float64) float64 {
	if t <= 0 {
		return 0
	}
	fwd := v.base.BlackVarianceTime(v.offset+t, strike) - v.base.BlackVarianceTime(v.offset, strike)
	return math.Max(fwd, 0)
}

func (v *Implied) BlackVariance(d time.Time, strike float64) float64 {
	return v.BlackVarianceTime(utils.YearFraction(v.reference, d, v.DayCount()), strike)
}

func (v *Implied) BlackVol(d time.Time, strike float64) float64 {
	t := utils.YearFraction(v.reference, d, v.DayCount())
	if t <= 0 {
		return v.base.BlackVol(v.reference, strike)
	}
	return math.Sqrt(v.BlackVarianceTime(t, strike) / t)
}
