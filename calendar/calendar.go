package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET  CalendarID = "TARGET"
	USD     CalendarID = "USD"
	WEEKEND CalendarID = "WEEKEND" // weekends only, no holiday set
)

var holidaySets = map[CalendarID]map[string]struct{}{
	TARGET: {},
	USD:    {},
}

// AddHolidays registers extra holidays on a calendar.
// The engines only consume adjusted dates, so holiday data is supplied by
// the caller rather than shipped with the library.
func AddHolidays(cal CalendarID, dates ...time.Time) {
	set, ok := holidaySets[cal]
	if !ok {
		set = make(map[string]struct{})
		holidaySets[cal] = set
	}
	for _, d := range dates {
		set[d.Format("2006-01-02")] = struct{}{}
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	set, ok := holidaySets[cal]
	if !ok {
		return false
	}
	_, hit := set[t.Format("2006-01-02")]
	return hit
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}
