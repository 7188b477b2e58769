package create_booking

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TherapistID     *int64               // nil = автоподбор свободного терапевта
	ServiceOptionID int64                // ID варианта услуги
	ClientID        int64                // ID клиента
	Date            time.Time            // Дата бронирования (без времени)
	StartTime       types.TimeString     // Время начала (например, "10:00")
	PaymentMethod   domain.PaymentMethod // card / cash / insurance / interac
	PaymentMethodID *string              // Платёжный метод Stripe; обязателен для card
	Notes           *string              // Дополнительные заметки (опционально)
	CreatedByStaff  bool                 // Walk-in от администратора: бронь сразу confirmed
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Reference       string
	TherapistID     int64
	ServiceOptionID int64
	ClientID        int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	SessionStatus   string
	PaymentStatus   string
	PaymentMethod   string

	// Снимок данных услуги на момент бронирования
	ServiceName    string
	PriceAtBooking float64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Config параметры проверки доступности при записи
type Config struct {
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int
	Location                *time.Location
	Currency                string // Валюта платежей, например "cad"
}
