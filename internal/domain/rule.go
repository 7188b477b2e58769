package domain

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// RuleType represents the kind of availability rule
type RuleType string

const (
	RuleWorkingHours RuleType = "working_hours"
	RuleTimeOff      RuleType = "time_off"
)

// ValidRuleType reports whether t is a known rule type
func ValidRuleType(t RuleType) bool {
	return t == RuleWorkingHours || t == RuleTimeOff
}

// AvailabilityRule describes a therapist's recurring or date-specific
// availability window. Exactly one of DayOfWeek and SpecificDate is set:
// a rule either recurs weekly or applies to a single calendar date.
//
// Resolution for a given date: specific-date rules override recurring rules
// of the same type for that weekday. Time-off rules always subtract from
// working hours, never add.
type AvailabilityRule struct {
	ID           int64
	TherapistID  int64
	Type         RuleType
	DayOfWeek    *int       // 0 = Sunday .. 6 = Saturday; nil для правил на конкретную дату
	SpecificDate *time.Time // nil для еженедельных правил
	StartTime    types.TimeString
	EndTime      types.TimeString
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRecurring returns true if the rule repeats weekly
func (r *AvailabilityRule) IsRecurring() bool {
	return r.DayOfWeek != nil
}

// AppliesTo reports whether the rule covers the given calendar date,
// ignoring the specific-over-recurring precedence (resolved by the caller)
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	if r.SpecificDate != nil {
		y1, m1, d1 := r.SpecificDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if r.DayOfWeek != nil {
		return *r.DayOfWeek == int(date.Weekday())
	}
	return false
}

// Interval returns the rule's window as an Interval
func (r *AvailabilityRule) Interval() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}
