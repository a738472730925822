package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/optlib/calendar"
)

func TestAdjustFollowing(t *testing.T) {
	// 2026-01-17 is a Saturday.
	saturday := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)

	assert.False(t, calendar.IsBusinessDay(calendar.TARGET, saturday))
	assert.Equal(t, monday, calendar.AdjustFollowing(calendar.TARGET, saturday))
	assert.Equal(t, monday, calendar.AdjustFollowing(calendar.TARGET, monday))
}

func TestAdjustModifiedFollowingStaysInMonth(t *testing.T) {
	// 2026-01-31 is a Saturday; Modified Following rolls back to Friday.
	eom := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, friday, calendar.Adjust(calendar.TARGET, eom))
}

func TestAddHolidays(t *testing.T) {
	holiday := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) // a Friday
	assert.True(t, calendar.IsBusinessDay(calendar.TARGET, holiday))

	calendar.AddHolidays(calendar.TARGET, holiday)
	assert.False(t, calendar.IsBusinessDay(calendar.TARGET, holiday))

	next := calendar.AddBusinessDays(calendar.TARGET, holiday, 1)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), next) // Monday
}
