package domain

import "github.com/remedyhq/RMT-SchedulingService/pkg/types"

// AvailableSlot represents a computed bookable start time. Slots are not
// persisted; they are derived from availability rules and the booking ledger
// for a single (date, service duration) query.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Remaining       int // Свободные терапевты на это время
	Total           int // Все подходящие терапевты
}

// IsFull returns true if the slot has no remaining capacity
func (s *AvailableSlot) IsFull() bool {
	return s.Remaining <= 0
}

// IsFullyAvailable returns true if every qualifying therapist is free
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.Remaining == s.Total
}
