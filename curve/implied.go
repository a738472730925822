package curve

import (
	"time"

	"github.com/meenmo/optlib/utils"
)

// Implied is a term structure derived from an existing one by moving the
// reference date forward: discounts are quoted as seen from the new
// reference, i.e. Discount(d) = base.Discount(d) / base.Discount(ref).
//
// This is how a forward-start problem is encoded as an ordinary one: the
// delegate engine prices against a curve whose life begins at the reset
// date instead of today.
type Implied struct {
	base      TermStructure
	reference time.Time
	offset    float64 // year fraction from base reference to new reference
	baseDF    float64 // base discount at new reference
}

// NewImplied re-bases the given curve at reference. The new reference must
// not precede the base curve's own reference date; that is enforced by the
// argument validation of the engines that build these.
func NewImplied(base TermStructure, reference time.Time) *Implied {
	return &Implied{
		base:      base,
		reference: reference,
		offset:    utils.YearFraction(base.ReferenceDate(), reference, base.DayCount()),
		baseDF:    base.Discount(reference),
	}
}

func (c *Implied) ReferenceDate() time.Time { return c.reference }
func (c *Implied) DayCount() string         { return c.base.DayCount() }

func (c *Implied) Discount(d time.Time) float64 {
	return c.base.Discount(d) / c.baseDF
}

func (c *Implied) DiscountTime(t float64) float64 {
	return c.base.DiscountTime(c.offset+t) / c.baseDF
}

func (c *Implied) ZeroYield(d time.Time) float64 {
	return zeroYieldFromDiscount(c, d)
}
