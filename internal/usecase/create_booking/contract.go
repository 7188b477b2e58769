package create_booking

import (
	"context"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/paymentservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetForDate(ctx context.Context, therapistID int64, date time.Time) ([]*domain.AvailabilityRule, error)
}

// ServiceOptionRepository интерфейс каталога вариантов услуг
type ServiceOptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOption, error)
	GetTherapistIDsForService(ctx context.Context, serviceID int64) ([]int64, error)
	TherapistOffersService(ctx context.Context, therapistID, serviceID int64) (bool, error)
}

// PaymentClient интерфейс платёжного сервиса
type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*paymentservice.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, paymentIntentID, paymentMethodID string) (*paymentservice.PaymentResult, error)
}

// NotifyClient интерфейс сервиса уведомлений (fire-and-forget)
type NotifyClient interface {
	SendBookingEventAsync(event *notifyservice.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
