package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

func iv(start, end string) Interval {
	return Interval{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint", a: iv("09:00", "10:00"), b: iv("11:00", "12:00"), want: false},
		{name: "partial overlap", a: iv("09:00", "10:00"), b: iv("09:30", "10:30"), want: true},
		{name: "contained", a: iv("09:00", "12:00"), b: iv("10:00", "11:00"), want: true},
		{name: "identical", a: iv("09:00", "10:00"), b: iv("09:00", "10:00"), want: true},
		// Полуоткрытые интервалы: касание границами - не конфликт
		{name: "touching end-to-start", a: iv("09:00", "10:00"), b: iv("10:00", "11:00"), want: false},
		{name: "touching start-to-end", a: iv("10:00", "11:00"), b: iv("09:00", "10:00"), want: false},
		{name: "one minute overlap", a: iv("09:00", "10:01"), b: iv("10:00", "11:00"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	outer := iv("09:00", "17:00")

	assert.True(t, outer.Contains(iv("09:00", "17:00")))
	assert.True(t, outer.Contains(iv("10:00", "11:00")))
	assert.True(t, outer.Contains(iv("16:30", "17:00")))
	assert.False(t, outer.Contains(iv("08:30", "09:30")))
	assert.False(t, outer.Contains(iv("16:30", "17:30")))
}

func TestInterval_Subtract(t *testing.T) {
	tests := []struct {
		name    string
		window  Interval
		blocked []Interval
		want    []Interval
	}{
		{
			name:    "no blocks",
			window:  iv("09:00", "17:00"),
			blocked: nil,
			want:    []Interval{iv("09:00", "17:00")},
		},
		{
			name:    "block in the middle splits window",
			window:  iv("09:00", "17:00"),
			blocked: []Interval{iv("12:00", "13:00")},
			want:    []Interval{iv("09:00", "12:00"), iv("13:00", "17:00")},
		},
		{
			name:    "block at the start",
			window:  iv("09:00", "17:00"),
			blocked: []Interval{iv("09:00", "10:00")},
			want:    []Interval{iv("10:00", "17:00")},
		},
		{
			name:    "block covers whole window",
			window:  iv("09:00", "17:00"),
			blocked: []Interval{iv("08:00", "18:00")},
			want:    []Interval{},
		},
		{
			name:    "touching block does not cut",
			window:  iv("09:00", "17:00"),
			blocked: []Interval{iv("17:00", "18:00")},
			want:    []Interval{iv("09:00", "17:00")},
		},
		{
			name:   "multiple blocks",
			window: iv("09:00", "17:00"),
			blocked: []Interval{
				iv("10:00", "10:30"),
				iv("12:00", "13:00"),
			},
			want: []Interval{
				iv("09:00", "10:00"),
				iv("10:30", "12:00"),
				iv("13:00", "17:00"),
			},
		},
		{
			name:   "overlapping blocks",
			window: iv("09:00", "17:00"),
			blocked: []Interval{
				iv("10:00", "12:00"),
				iv("11:00", "13:00"),
			},
			want: []Interval{iv("09:00", "10:00"), iv("13:00", "17:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.window.Subtract(tt.blocked)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubtractAll_SplitShift(t *testing.T) {
	// Две рабочие смены, перерыв вычитается только из утренней
	windows := []Interval{iv("09:00", "12:00"), iv("14:00", "18:00")}
	blocked := []Interval{iv("10:00", "10:30")}

	got := SubtractAll(windows, blocked)

	assert.Equal(t, []Interval{
		iv("09:00", "10:00"),
		iv("10:30", "12:00"),
		iv("14:00", "18:00"),
	}, got)
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, iv("09:00", "17:00").IsValid())
	assert.False(t, iv("17:00", "09:00").IsValid())
	assert.False(t, iv("09:00", "09:00").IsValid())
}
