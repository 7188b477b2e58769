package domain

import (
	"sort"

	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// Interval is a half-open clock-time interval [Start, End) within one day.
// Intervals that merely touch (one ends exactly where the other starts)
// do not overlap.
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if the interval is well-formed (End strictly after Start)
func (i Interval) IsValid() bool {
	return i.End.IsAfter(i.Start)
}

// Overlaps reports whether i and other share any time.
// Строгие неравенства: граничащие интервалы не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

// Contains reports whether other lies entirely inside i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !other.End.IsAfter(i.End)
}

// Subtract removes every blocked interval from i, returning the remaining
// disjoint open sub-intervals in ascending order
func (i Interval) Subtract(blocked []Interval) []Interval {
	open := []Interval{i}

	for _, block := range blocked {
		next := make([]Interval, 0, len(open))
		for _, o := range open {
			if !o.Overlaps(block) {
				next = append(next, o)
				continue
			}
			// Левый остаток до начала блокировки
			if block.Start.IsAfter(o.Start) {
				next = append(next, Interval{Start: o.Start, End: block.Start})
			}
			// Правый остаток после конца блокировки
			if block.End.IsBefore(o.End) {
				next = append(next, Interval{Start: block.End, End: o.End})
			}
		}
		open = next
	}

	sort.Slice(open, func(a, b int) bool {
		return open[a].Start.IsBefore(open[b].Start)
	})
	return open
}

// SubtractAll removes blocked intervals from each of the given windows
// and returns the combined disjoint remainder in ascending order
func SubtractAll(windows []Interval, blocked []Interval) []Interval {
	result := make([]Interval, 0, len(windows))
	for _, w := range windows {
		result = append(result, w.Subtract(blocked)...)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].Start.IsBefore(result[b].Start)
	})
	return result
}
