package domain

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// BookingStatus represents the confirmation status of a booking
type BookingStatus string

const (
	StatusPendingConfirmation BookingStatus = "pending_confirmation"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByClient   BookingStatus = "cancelled_by_client"
	StatusCancelledByStaff    BookingStatus = "cancelled_by_staff"
	StatusNoShow              BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod represents how the client pays for the session
type PaymentMethod string

const (
	MethodCard      PaymentMethod = "card"
	MethodCash      PaymentMethod = "cash"
	MethodInsurance PaymentMethod = "insurance"
	MethodInterac   PaymentMethod = "interac"
)

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCard, MethodCash, MethodInsurance, MethodInterac:
		return true
	}
	return false
}

// Booking represents a massage-therapy appointment.
// The occupied interval is [StartTime, StartTime+DurationMinutes), half-open:
// a booking ending at 10:30 does not conflict with one starting at 10:30.
type Booking struct {
	ID              int64
	Reference       string // внешний идентификатор (UUID), используется в уведомлениях и платежах
	TherapistID     int64
	ServiceOptionID int64
	ClientID        int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	SessionStatus   SessionStatus
	PaymentStatus   PaymentStatus
	PaymentMethod   PaymentMethod

	// Denormalized snapshot taken at booking time; later catalog edits
	// must not affect historical bookings
	ServiceName    string
	PriceAtBooking float64
	PaymentRef     *string

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	NoShowReason   *string
	NoShowMarkedAt *time.Time
	NoShowMarkedBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// bookingTransitions допустимые переходы статуса бронирования
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingConfirmation: {StatusConfirmed, StatusCancelledByClient, StatusCancelledByStaff, StatusNoShow},
	StatusConfirmed:           {StatusCompleted, StatusCancelledByClient, StatusCancelledByStaff, StatusNoShow},
	StatusCompleted:           {},
	StatusCancelledByClient:   {},
	StatusCancelledByStaff:    {},
	StatusNoShow:              {},
}

// CanTransitionTo reports whether the booking status may move to next.
// Terminal states (completed, cancelled, no-show) allow no further transitions.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsActive returns true if the booking still occupies its time interval.
// Cancelled bookings free the slot; no-show bookings keep it blocked for audit.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient && b.Status != StatusCancelledByStaff
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingConfirmation || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPendingConfirmation || b.Status == StatusConfirmed
}

// EndTime returns the exclusive end of the occupied interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	TherapistID     *int64         // Фильтр по терапевту (опционально)
	ClientID        *int64         // Фильтр по клиенту (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
