package domain

import "time"

// SessionStatus is the clinical-session lifecycle overlay on a booking,
// tracked independently of the confirmation status: a confirmed booking's
// session may still be scheduled, running or finished.
type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionInProgress  SessionStatus = "in_progress"
	SessionCompleted   SessionStatus = "completed"
	SessionNoShow      SessionStatus = "no_show"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

// sessionTransitions допустимые переходы статуса сессии
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionScheduled:   {SessionInProgress, SessionNoShow, SessionCancelled, SessionRescheduled},
	SessionInProgress:  {SessionCompleted, SessionNoShow, SessionCancelled},
	SessionCompleted:   {},
	SessionNoShow:      {},
	SessionCancelled:   {},
	SessionRescheduled: {SessionScheduled},
}

// CanSessionTransitionTo reports whether the session status may move from current to next
func CanSessionTransitionTo(current, next SessionStatus) bool {
	for _, allowed := range sessionTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidSessionStatus reports whether s is a known session status
func ValidSessionStatus(s SessionStatus) bool {
	_, ok := sessionTransitions[s]
	return ok
}

// overdueInProgressAfter сколько времени сессия может оставаться in_progress
// после начала бронирования, прежде чем считаться требующей внимания
const overdueInProgressAfter = 2 * time.Hour

// AttentionReason explains why a session shows up in the needing-attention view
type AttentionReason string

const (
	AttentionOverdue           AttentionReason = "overdue"
	AttentionOverdueInProgress AttentionReason = "overdue_in_progress"
)

// SessionAttention classifies a booking's session against the current time.
// Returns the reason and true when the session needs staff attention:
// still scheduled after its start time, or in progress for over two hours.
func SessionAttention(b *Booking, now time.Time) (AttentionReason, bool) {
	start, err := b.StartOn(now.Location())
	if err != nil {
		return "", false
	}

	switch b.SessionStatus {
	case SessionScheduled:
		if start.Before(now) {
			return AttentionOverdue, true
		}
	case SessionInProgress:
		if start.Add(overdueInProgressAfter).Before(now) {
			return AttentionOverdueInProgress, true
		}
	}
	return "", false
}

// StartOn returns the booking's start as an absolute time in loc
func (b *Booking) StartOn(loc *time.Location) (time.Time, error) {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	date := b.BookingDate
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(minutes) * time.Minute), nil
}
