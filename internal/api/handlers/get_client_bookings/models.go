package get_client_bookings

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings/models"
)

// BookingView HTTP модель элемента истории бронирований
type BookingView struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	TherapistID     int64   `json:"therapistId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	SessionStatus   string  `json:"sessionStatus"`
	PaymentStatus   string  `json:"paymentStatus"`
	ServiceName     string  `json:"serviceName"`
	PriceAtBooking  float64 `json:"priceAtBooking"`
	CreatedAt       string  `json:"createdAt"`
}

// BookingListView HTTP модель истории бронирований
type BookingListView struct {
	Bookings []*BookingView `json:"bookings"`
	Total    int            `json:"total"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(list *models.BookingListResponse) *BookingListView {
	result := make([]*BookingView, 0, len(list.Bookings))
	for _, b := range list.Bookings {
		result = append(result, &BookingView{
			ID:              b.ID,
			Reference:       b.Reference,
			TherapistID:     b.TherapistID,
			BookingDate:     b.BookingDate.Format(domain.DateFormat),
			StartTime:       b.StartTime,
			EndTime:         b.EndTime,
			DurationMinutes: b.DurationMinutes,
			Status:          b.Status,
			SessionStatus:   b.SessionStatus,
			PaymentStatus:   b.PaymentStatus,
			ServiceName:     b.ServiceName,
			PriceAtBooking:  b.PriceAtBooking,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}
	return &BookingListView{Bookings: result, Total: list.Total}
}
