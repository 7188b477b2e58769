package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	rescheduleBooking "github.com/remedyhq/RMT-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate  string `json:"newDate"`  // "2026-09-15"
	NewStart string `json:"newStart"` // "10:00" или "2:30 PM"
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	TherapistID     int64  `json:"therapistId"`
	ClientID        int64  `json:"clientId"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	SessionStatus   string `json:"sessionStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64) (*rescheduleBooking.Request, error) {
	// Дата нормализуется один раз на границе сервиса
	civ, err := types.Normalize(r.NewDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", r.NewDate)
	}
	newDate, err := civ.Date(time.UTC)
	if err != nil {
		return nil, err
	}

	newStart, err := types.NewTimeStringFromString(r.NewStart)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		NewDate:   newDate,
		NewStart:  newStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		TherapistID:     resp.TherapistID,
		ClientID:        resp.ClientID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		SessionStatus:   resp.SessionStatus,
	}
}
