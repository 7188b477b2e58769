package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat возвращается, когда строка времени не может быть разобрана
var ErrInvalidTimeFormat = errors.New("types: invalid time format")

const minutesPerDay = 24 * 60

// TimeString represents a clock time within a day in canonical "HH:MM" form.
// It is the single time-of-day representation used across the service:
// parsed once at the boundary, compared and stored without re-parsing.
type TimeString string

// NewTimeString creates a TimeString from the clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: minutes out of range: %d", ErrInvalidTimeFormat, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// NewTimeStringFromString parses a clock time string into canonical form.
// Accepted inputs:
//   - "HH:MM" / "H:MM" (24-hour)
//   - "HH:MM:SS" (seconds are dropped)
//   - "H:MM AM" / "H:MM PM" (12-hour; 12 AM -> 00, 12 PM -> 12)
func NewTimeStringFromString(s string) (TimeString, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidTimeFormat)
	}

	// 12-часовой формат с суффиксом AM/PM
	upper := strings.ToUpper(trimmed)
	var meridiem string
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
	}
	if meridiem != "" {
		trimmed = strings.TrimSpace(upper[:len(upper)-2])
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	// Конвертация 12-часового формата в 24-часовой
	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		if hour != 12 {
			hour += 12
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute)), nil
}

// String returns the canonical "HH:MM" representation
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a well-formed canonical "HH:MM" time
func (t TimeString) Validate() error {
	_, err := t.minutes()
	return err
}

// Minutes returns the value as minutes since midnight
func (t TimeString) Minutes() (int, error) {
	return t.minutes()
}

func (t TimeString) minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return hour*60 + minute, nil
}

// AddMinutes returns a new TimeString shifted forward by the given number of minutes.
// Returns an error if the result crosses the day boundary.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.minutes()
	if err != nil {
		return "", err
	}
	total := current + minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %q + %d minutes crosses day boundary", ErrInvalidTimeFormat, string(t), minutes)
	}
	// 24:00 допускается как конец последнего интервала дня
	if total == minutesPerDay {
		return TimeString("24:00"), nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.comparable()
	b, errB := other.comparable()
	if errA != nil || errB != nil {
		return string(t) < string(other)
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.comparable()
	b, errB := other.comparable()
	if errA != nil || errB != nil {
		return string(t) > string(other)
	}
	return a > b
}

// comparable like minutes, but accepts the "24:00" end-of-day sentinel
func (t TimeString) comparable() (int, error) {
	if t == "24:00" {
		return minutesPerDay, nil
	}
	return t.minutes()
}

// Value implements driver.Valuer for storing in the database
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner for reading from the database
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	switch v := src.(type) {
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeString", ErrInvalidTimeFormat, src)
	}

	return nil
}
