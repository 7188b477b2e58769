package domain

import (
	"sort"
	"time"
)

// ResolveWorkingWindows returns the effective working-hour windows for a
// therapist on the given date. Specific-date working-hours rules override
// all recurring working-hours rules for that weekday; otherwise the recurring
// rules for the weekday apply. Multiple windows per day are legal (split
// shifts). The result is sorted ascending by start time.
func ResolveWorkingWindows(rules []*AvailabilityRule, date time.Time) []Interval {
	var specific, recurring []Interval

	for _, rule := range rules {
		if rule.Type != RuleWorkingHours || !rule.AppliesTo(date) {
			continue
		}
		if rule.SpecificDate != nil {
			specific = append(specific, rule.Interval())
		} else {
			recurring = append(recurring, rule.Interval())
		}
	}

	windows := recurring
	if len(specific) > 0 {
		windows = specific
	}

	sort.Slice(windows, func(a, b int) bool {
		return windows[a].Start.IsBefore(windows[b].Start)
	})
	return windows
}

// ResolveTimeOff returns every time-off interval covering the given date.
// Time off is not subject to specific-over-recurring precedence: time off
// always subtracts, so recurring and date-specific blocks both apply.
func ResolveTimeOff(rules []*AvailabilityRule, date time.Time) []Interval {
	var blocked []Interval
	for _, rule := range rules {
		if rule.Type != RuleTimeOff || !rule.AppliesTo(date) {
			continue
		}
		blocked = append(blocked, rule.Interval())
	}
	sort.Slice(blocked, func(a, b int) bool {
		return blocked[a].Start.IsBefore(blocked[b].Start)
	})
	return blocked
}

// OpenIntervals computes the final free intervals for a therapist on date:
// effective working windows minus time off minus active booking intervals
func OpenIntervals(rules []*AvailabilityRule, bookings []*Booking, date time.Time) []Interval {
	windows := ResolveWorkingWindows(rules, date)
	if len(windows) == 0 {
		return nil
	}

	blocked := ResolveTimeOff(rules, date)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		end, err := booking.EndTime()
		if err != nil {
			continue
		}
		blocked = append(blocked, Interval{Start: booking.StartTime, End: end})
	}

	return SubtractAll(windows, blocked)
}
