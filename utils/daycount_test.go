package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/optlib/utils"
)

func TestYearFraction(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 365)

	assert.InDelta(t, 1.0, utils.YearFraction(start, end, "ACT/365F"), 1e-12)
	assert.InDelta(t, 365.0/360.0, utils.YearFraction(start, end, "ACT/360"), 1e-12)
	assert.InDelta(t, 1.0, utils.YearFraction(start, end, "30E/360"), 1e-12)

	// Unknown conventions fall back to ACT/365F.
	assert.InDelta(t, 1.0, utils.YearFraction(start, end, "BOGUS"), 1e-12)

	// Negative intervals come out negative, which the engines rely on to
	// reject reset dates before the curve reference.
	assert.Less(t, utils.YearFraction(end, start, "ACT/365F"), 0.0)
}

func TestAdjacentDates(t *testing.T) {
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		base,
		base.AddDate(0, 0, 365),
		base.AddDate(0, 0, 730),
	}

	lo, hi := utils.AdjacentDates(base.AddDate(0, 0, 400), dates)
	assert.Equal(t, dates[1], lo)
	assert.Equal(t, dates[2], hi)

	// Outside the range the nearest boundary pair is returned.
	lo, hi = utils.AdjacentDates(base.AddDate(0, 0, -10), dates)
	assert.Equal(t, dates[0], lo)
	assert.Equal(t, dates[1], hi)
	lo, hi = utils.AdjacentDates(base.AddDate(0, 0, 1000), dates)
	assert.Equal(t, dates[1], lo)
	assert.Equal(t, dates[2], hi)
}
