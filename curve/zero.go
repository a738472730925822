package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/optlib/utils"
)

// ZeroCurve is a term structure built from discount factor nodes, with
// log-linear interpolation of discount factors (flat forward rates between
// nodes) on the curve's time axis.
type ZeroCurve struct {
	reference time.Time
	dayCount  string
	pillars   []time.Time
	times     []float64 // year fraction of each pillar from reference
	dfs       map[time.Time]float64
}

// NewZeroCurve builds a curve from discount factors keyed by node date.
// Nodes before the reference date are rejected; a unit node at the
// reference date is implied.
func NewZeroCurve(reference time.Time, dfs map[time.Time]float64) (*ZeroCurve, error) {
	if len(dfs) == 0 {
		return nil, fmt.Errorf("NewZeroCurve: no discount factor nodes given")
	}
	c := &ZeroCurve{
		reference: reference,
		dayCount:  utils.DefaultDayCount,
		dfs:       map[time.Time]float64{reference: 1.0},
	}
	for d, df := range dfs {
		if d.Before(reference) {
			return nil, fmt.Errorf("NewZeroCurve: node %s before reference %s",
				d.Format("2006-01-02"), reference.Format("2006-01-02"))
		}
		if df <= 0 {
			return nil, fmt.Errorf("NewZeroCurve: non-positive discount factor at %s", d.Format("2006-01-02"))
		}
		c.dfs[d] = df
	}
	for d := range c.dfs {
		c.pillars = append(c.pillars, d)
	}
	utils.SortDates(c.pillars)
	c.times = make([]float64, len(c.pillars))
	for i, d := range c.pillars {
		c.times[i] = utils.YearFraction(reference, d, c.dayCount)
	}
	return c, nil
}

func (c *ZeroCurve) ReferenceDate() time.Time { return c.reference }
func (c *ZeroCurve) DayCount() string         { return c.dayCount }

func (c *ZeroCurve) Discount(d time.Time) float64 {
	if df, ok := c.dfs[d]; ok {
		return df
	}
	return c.DiscountTime(utils.YearFraction(c.reference, d, c.dayCount))
}

// DiscountTime log-linearly interpolates the discount factors, which keeps
// the forward rate flat between nodes. Outside the node range the boundary
// forward rate is extrapolated.
func (c *ZeroCurve) DiscountTime(t float64) float64 {
	if t <= 0 {
		return 1.0
	}
	if len(c.pillars) < 2 {
		// Single node beyond the reference: flat zero rate.
		df := c.dfs[c.pillars[len(c.pillars)-1]]
		tN := c.times[len(c.times)-1]
		if tN <= 0 {
			return 1.0
		}
		return math.Exp(math.Log(df) * t / tN)
	}

	d1, d2 := utils.AdjacentDates(c.dateAt(t), c.pillars)
	df1, df2 := c.dfs[d1], c.dfs[d2]
	t1 := utils.YearFraction(c.reference, d1, c.dayCount)
	t2 := utils.YearFraction(c.reference, d2, c.dayCount)
	if t2 == t1 {
		return df1
	}
	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-forwardRate*(t-t1))
}

func (c *ZeroCurve) ZeroYield(d time.Time) float64 {
	return zeroYieldFromDiscount(c, d)
}

// dateAt maps a year fraction back onto the date axis (ACT/365F inverse).
func (c *ZeroCurve) dateAt(t float64) time.Time {
	return c.reference.AddDate(0, 0, int(math.Round(t*365.0)))
}
