package get_booking

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings/models"
)

// BookingView HTTP модель бронирования
type BookingView struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	TherapistID     int64   `json:"therapistId"`
	ServiceOptionID int64   `json:"serviceOptionId"`
	ClientID        int64   `json:"clientId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	SessionStatus   string  `json:"sessionStatus"`
	PaymentStatus   string  `json:"paymentStatus"`
	PaymentMethod   string  `json:"paymentMethod"`
	ServiceName     string  `json:"serviceName"`
	PriceAtBooking  float64 `json:"priceAtBooking"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	NoShowReason       *string `json:"noShowReason,omitempty"`
	NoShowMarkedAt     *string `json:"noShowMarkedAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(b *models.BookingResponse) *BookingView {
	return &BookingView{
		ID:                 b.ID,
		Reference:          b.Reference,
		TherapistID:        b.TherapistID,
		ServiceOptionID:    b.ServiceOptionID,
		ClientID:           b.ClientID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    b.DurationMinutes,
		Status:             b.Status,
		SessionStatus:      b.SessionStatus,
		PaymentStatus:      b.PaymentStatus,
		PaymentMethod:      b.PaymentMethod,
		ServiceName:        b.ServiceName,
		PriceAtBooking:     b.PriceAtBooking,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        formatTimePtr(b.CancelledAt),
		NoShowReason:       b.NoShowReason,
		NoShowMarkedAt:     formatTimePtr(b.NoShowMarkedAt),
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
