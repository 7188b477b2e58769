package types

import (
	"fmt"
	"time"
)

// Civil is the canonical normalized form of a point in time:
// a calendar date, a clock time and a day of week, all in one reference
// location. Every heterogeneous date/time input entering the service is
// resolved into this form exactly once, at the boundary.
type Civil struct {
	DateStr   string // "YYYY-MM-DD"
	TimeStr   string // "HH:MM:SS"
	DayOfWeek int    // 0 = Sunday .. 6 = Saturday
}

// CivilParts is a pre-split date/time input pair
type CivilParts struct {
	Date string // "YYYY-MM-DD"
	Time string // "HH:MM", "HH:MM:SS" or "H:MM AM/PM"
}

// Date returns the civil date as a time.Time at midnight in loc
func (c Civil) Date(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.DateStr, loc)
}

// Time returns the clock component as a TimeString
func (c Civil) Time() (TimeString, error) {
	return NewTimeStringFromString(c.TimeStr)
}

// Normalize resolves a heterogeneous date/time input into Civil form in loc.
// Accepted inputs: time.Time, ISO-8601 string, epoch milliseconds (int64),
// CivilParts. Anything else fails with ErrInvalidTimeFormat.
func Normalize(input interface{}, loc *time.Location) (Civil, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch v := input.(type) {
	case time.Time:
		return fromTime(v.In(loc)), nil

	case int64:
		return fromTime(time.UnixMilli(v).In(loc)), nil

	case string:
		t, err := parseISO(v, loc)
		if err != nil {
			return Civil{}, err
		}
		return fromTime(t.In(loc)), nil

	case CivilParts:
		date, err := time.ParseInLocation("2006-01-02", v.Date, loc)
		if err != nil {
			return Civil{}, fmt.Errorf("%w: invalid date %q", ErrInvalidTimeFormat, v.Date)
		}
		clock, err := NewTimeStringFromString(v.Time)
		if err != nil {
			return Civil{}, err
		}
		minutes, err := clock.Minutes()
		if err != nil {
			return Civil{}, err
		}
		t := date.Add(time.Duration(minutes) * time.Minute)
		return fromTime(t), nil

	default:
		return Civil{}, fmt.Errorf("%w: unsupported input type %T", ErrInvalidTimeFormat, input)
	}
}

// parseISO пробует известные ISO-8601 варианты
func parseISO(s string, loc *time.Location) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 date/time", ErrInvalidTimeFormat, s)
}

func fromTime(t time.Time) Civil {
	return Civil{
		DateStr:   t.Format("2006-01-02"),
		TimeStr:   t.Format("15:04:05"),
		DayOfWeek: int(t.Weekday()),
	}
}
