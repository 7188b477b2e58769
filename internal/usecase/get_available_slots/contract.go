package get_available_slots

import (
	"context"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает бронирования терапевта на конкретную дату
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	// GetForDate получает правила терапевта, действующие на указанную дату
	GetForDate(ctx context.Context, therapistID int64, date time.Time) ([]*domain.AvailabilityRule, error)
}

// ServiceOptionRepository интерфейс каталога вариантов услуг
type ServiceOptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOption, error)
	GetTherapistIDsForService(ctx context.Context, serviceID int64) ([]int64, error)
	TherapistOffersService(ctx context.Context, therapistID, serviceID int64) (bool, error)
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
