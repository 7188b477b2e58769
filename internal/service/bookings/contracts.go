package bookings

import (
	"context"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateSessionStatus(ctx context.Context, id int64, status domain.SessionStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentRef *string) error
	MarkNoShow(ctx context.Context, id int64, reason string, markedBy int64) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// NotifyClient интерфейс сервиса уведомлений (fire-and-forget)
type NotifyClient interface {
	SendBookingEventAsync(event *notifyservice.BookingEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
