package models

import (
	"fmt"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
)

// BookingResponse модель бронирования для внешних слоёв
type BookingResponse struct {
	ID              int64
	Reference       string
	TherapistID     int64
	ServiceOptionID int64
	ClientID        int64
	BookingDate     time.Time
	StartTime       string
	EndTime         string
	DurationMinutes int
	Status          string
	SessionStatus   string
	PaymentStatus   string
	PaymentMethod   string

	ServiceName    string
	PriceAtBooking float64

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	NoShowReason   *string
	NoShowMarkedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse
	Total    int
}

// GetClientBookingsRequest запрос истории бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64
	Status   *string // Опциональный фильтр по статусу
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64 // Кто отменяет
	IsStaff            bool  // Отмена сотрудником клиники
	CancellationReason string
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID int64
	Status string
}

// UpdateSessionStatusRequest запрос на смену статуса сессии
type UpdateSessionStatusRequest struct {
	UserID int64
	Status string
}

// MarkNoShowRequest запрос на отметку неявки клиента
type MarkNoShowRequest struct {
	MarkedBy int64
	Reason   string
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	endTime := ""
	if end, err := b.EndTime(); err == nil {
		endTime = end.String()
	}

	return &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		TherapistID:        b.TherapistID,
		ServiceOptionID:    b.ServiceOptionID,
		ClientID:           b.ClientID,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime.String(),
		EndTime:            endTime,
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		SessionStatus:      string(b.SessionStatus),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      string(b.PaymentMethod),
		ServiceName:        b.ServiceName,
		PriceAtBooking:     b.PriceAtBooking,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		NoShowReason:       b.NoShowReason,
		NoShowMarkedAt:     b.NoShowMarkedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain.Booking
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.StatusPendingConfirmation, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCancelledByClient, domain.StatusCancelledByStaff, domain.StatusNoShow:
		return status, nil
	}
	return "", fmt.Errorf("unknown booking status: %s", s)
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus
func ToDomainSessionStatus(s string) (domain.SessionStatus, error) {
	status := domain.SessionStatus(s)
	if !domain.ValidSessionStatus(status) {
		return "", fmt.Errorf("unknown session status: %s", s)
	}
	return status, nil
}
