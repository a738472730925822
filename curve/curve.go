// Package curve provides the yield term structures consumed by the pricing
// engines: discount factors, continuously compounded zero yields and the
// implied (forward-dated) wrapper used by the forward-start engines.
package curve

import (
	"math"
	"time"

	"github.com/meenmo/optlib/utils"
)

// TermStructure is the curve contract the engines price against.
//
// Discount and ZeroYield are date-based; DiscountTime takes a year fraction
// from the reference date on the curve's own day count, which is what
// engines holding a time-to-maturity rather than a maturity date need.
type TermStructure interface {
	ReferenceDate() time.Time
	DayCount() string
	Discount(d time.Time) float64
	DiscountTime(t float64) float64
	ZeroYield(d time.Time) float64
}

// FlatForward is a constant continuously-compounded rate curve.
type FlatForward struct {
	reference time.Time
	rate      float64
	dayCount  string
}

// NewFlatForward builds a flat curve on the default ACT/365F time axis.
func NewFlatForward(reference time.Time, rate float64) *FlatForward {
	return &FlatForward{reference: reference, rate: rate, dayCount: utils.DefaultDayCount}
}

func (c *FlatForward) ReferenceDate() time.Time { return c.reference }
func (c *FlatForward) DayCount() string         { return c.dayCount }

func (c *FlatForward) Discount(d time.Time) float64 {
	return c.DiscountTime(utils.YearFraction(c.reference, d, c.dayCount))
}

func (c *FlatForward) DiscountTime(t float64) float64 {
	return math.Exp(-c.rate * t)
}

func (c *FlatForward) ZeroYield(d time.Time) float64 {
	return c.rate
}

// zeroYieldFromDiscount derives the continuously compounded zero yield from
// a discount factor over a year fraction. Below one day the yield is taken
// at the one-day horizon to avoid the 0/0 limit.
func zeroYieldFromDiscount(ts TermStructure, d time.Time) float64 {
	tau := utils.YearFraction(ts.ReferenceDate(), d, ts.DayCount())
	const oneDay = 1.0 / 365.0
	if tau < oneDay {
		tau = oneDay
	}
	return -math.Log(ts.DiscountTime(tau)) / tau
}
