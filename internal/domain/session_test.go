package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanSessionTransitionTo(t *testing.T) {
	tests := []struct {
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{SessionScheduled, SessionInProgress, true},
		{SessionScheduled, SessionNoShow, true},
		{SessionScheduled, SessionCancelled, true},
		{SessionScheduled, SessionRescheduled, true},
		{SessionScheduled, SessionCompleted, false},

		{SessionInProgress, SessionCompleted, true},
		{SessionInProgress, SessionNoShow, true},
		{SessionInProgress, SessionRescheduled, false},

		// rescheduled возвращается в scheduled после переноса
		{SessionRescheduled, SessionScheduled, true},
		{SessionRescheduled, SessionInProgress, false},

		{SessionCompleted, SessionScheduled, false},
		{SessionNoShow, SessionScheduled, false},
		{SessionCancelled, SessionScheduled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanSessionTransitionTo(tt.from, tt.to))
		})
	}
}

func TestValidSessionStatus(t *testing.T) {
	assert.True(t, ValidSessionStatus(SessionScheduled))
	assert.True(t, ValidSessionStatus(SessionNoShow))
	assert.False(t, ValidSessionStatus("paused"))
}

func TestSessionAttention(t *testing.T) {
	date := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		session    SessionStatus
		startTime  string
		now        time.Time
		wantReason AttentionReason
		wantNeeds  bool
	}{
		{
			name:      "scheduled before start",
			session:   SessionScheduled,
			startTime: "14:00",
			now:       date.Add(13 * time.Hour),
			wantNeeds: false,
		},
		{
			name:       "scheduled past start is overdue",
			session:    SessionScheduled,
			startTime:  "14:00",
			now:        date.Add(14*time.Hour + time.Minute),
			wantReason: AttentionOverdue,
			wantNeeds:  true,
		},
		{
			name:      "in progress within two hours",
			session:   SessionInProgress,
			startTime: "14:00",
			now:       date.Add(15 * time.Hour),
			wantNeeds: false,
		},
		{
			name:       "in progress over two hours",
			session:    SessionInProgress,
			startTime:  "14:00",
			now:        date.Add(16*time.Hour + time.Minute),
			wantReason: AttentionOverdueInProgress,
			wantNeeds:  true,
		},
		{
			name:      "completed never needs attention",
			session:   SessionCompleted,
			startTime: "08:00",
			now:       date.Add(20 * time.Hour),
			wantNeeds: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{
				BookingDate:   date,
				StartTime:     timeStr(tt.startTime),
				SessionStatus: tt.session,
			}
			reason, needs := SessionAttention(b, tt.now)
			assert.Equal(t, tt.wantNeeds, needs)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
