package create_booking

import (
	"fmt"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	createBooking "github.com/remedyhq/RMT-SchedulingService/internal/usecase/create_booking"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TherapistID     *int64  `json:"therapistId,omitempty"` // nil = автоподбор терапевта
	ServiceOptionID int64   `json:"serviceOptionId"`
	BookingDate     string  `json:"bookingDate"` // "2026-09-15"
	StartTime       string  `json:"startTime"`   // "10:00" или "2:30 PM"
	PaymentMethod   string  `json:"paymentMethod"`
	PaymentMethodID *string `json:"paymentMethodId,omitempty"` // обязателен для card
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	TherapistID     int64   `json:"therapistId"`
	ServiceOptionID int64   `json:"serviceOptionId"`
	ClientID        int64   `json:"clientId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	SessionStatus   string  `json:"sessionStatus"`
	PaymentStatus   string  `json:"paymentStatus"`
	PaymentMethod   string  `json:"paymentMethod"`
	ServiceName     string  `json:"serviceName"`
	PriceAtBooking  float64 `json:"priceAtBooking"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64, isStaff bool) (*createBooking.Request, error) {
	// Дата и время нормализуются один раз на границе сервиса
	civ, err := types.Normalize(r.BookingDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date %q", r.BookingDate)
	}
	bookingDate, err := civ.Date(time.UTC)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TherapistID:     r.TherapistID,
		ServiceOptionID: r.ServiceOptionID,
		ClientID:        clientID,
		Date:            bookingDate,
		StartTime:       startTime,
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		PaymentMethodID: r.PaymentMethodID,
		Notes:           r.Notes,
		CreatedByStaff:  isStaff,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		TherapistID:     resp.TherapistID,
		ServiceOptionID: resp.ServiceOptionID,
		ClientID:        resp.ClientID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		SessionStatus:   resp.SessionStatus,
		PaymentStatus:   resp.PaymentStatus,
		PaymentMethod:   resp.PaymentMethod,
		ServiceName:     resp.ServiceName,
		PriceAtBooking:  resp.PriceAtBooking,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
