package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	bookingRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/booking"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
)

// UseCase use case для переноса бронирования на другой слот
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	notifyClient     NotifyClient
	txManager        TransactionManager
	cfg              Config
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		notifyClient:     notifyClient,
		txManager:        txManager,
		cfg:              cfg,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Терапевт остаётся прежним; проверка доступности нового интервала
// исключает само переносимое бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, newDate=%s, newStart=%s",
		req.BookingID, req.NewDate.Format(domain.DateFormat), req.NewStart)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе клиники
	now := uc.timeProvider.Now().In(uc.cfg.Location)

	// 3. Валидация новой даты и минимального времени до сеанса
	if err := validateDate(req.NewDate, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req, now, uc.cfg.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("RescheduleBooking: notice validation failed: %v", err)
		return nil, err
	}

	// 4. Сериализуемая транзакция: чтение брони, проверка доступности
	// нового интервала под блокировкой строк, перенос
	var moved *domain.Booking

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking=%d in status %s cannot be rescheduled",
				booking.ID, booking.Status)
			return ErrCannotReschedule
		}

		if err := uc.checkAvailability(txCtx, booking, req); err != nil {
			return err
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewDate, req.NewStart); err != nil {
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		booking.BookingDate = req.NewDate
		booking.StartTime = req.NewStart
		booking.SessionStatus = domain.SessionScheduled
		moved = booking
		return nil
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, ErrBookingNotFound),
			errors.Is(txErr, ErrCannotReschedule),
			errors.Is(txErr, ErrSlotConflict),
			errors.Is(txErr, ErrInternal):
			return nil, txErr
		}
		uc.logger.Error("RescheduleBooking: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, txErr)
	}

	// 5. Уведомление о переносе, fire-and-forget
	uc.notifyClient.SendBookingEventAsync(&notifyservice.BookingEvent{
		Event:            "booking_rescheduled",
		BookingReference: moved.Reference,
		ClientID:         moved.ClientID,
		TherapistID:      moved.TherapistID,
		ServiceName:      moved.ServiceName,
		BookingDate:      moved.BookingDate.Format(domain.DateFormat),
		StartTime:        moved.StartTime.String(),
		Notes:            moved.Notes,
	})

	uc.logger.Info("RescheduleBooking: booking=%d moved to %s %s",
		moved.ID, moved.BookingDate.Format(domain.DateFormat), moved.StartTime)

	return &Response{
		ID:              moved.ID,
		Reference:       moved.Reference,
		TherapistID:     moved.TherapistID,
		ClientID:        moved.ClientID,
		BookingDate:     moved.BookingDate,
		StartTime:       moved.StartTime,
		DurationMinutes: moved.DurationMinutes,
		Status:          string(moved.Status),
		SessionStatus:   string(moved.SessionStatus),
	}, nil
}

// checkAvailability проверяет, что новый интервал целиком лежит в открытом
// интервале терапевта. Само переносимое бронирование не считается занятым.
func (uc *UseCase) checkAvailability(ctx context.Context, booking *domain.Booking, req *Request) error {
	newEnd, err := req.NewStart.AddMinutes(booking.DurationMinutes)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: slot does not fit into the day: start=%s, duration=%d",
			req.NewStart, booking.DurationMinutes)
		return ErrSlotConflict
	}
	requested := domain.Interval{Start: req.NewStart, End: newEnd}

	rules, err := uc.availabilityRepo.GetForDate(ctx, booking.TherapistID, req.NewDate)
	if err != nil {
		return fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
	}

	filter := domain.BookingsFilter{
		TherapistID:     &booking.TherapistID,
		StartDate:       &req.NewDate,
		EndDate:         &req.NewDate,
		IncludeInactive: false,
	}
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	others := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID == booking.ID {
			continue
		}
		others = append(others, b)
	}

	open := domain.OpenIntervals(rules, others, req.NewDate)
	for _, o := range open {
		if o.Contains(requested) {
			return nil
		}
	}

	uc.logger.Warn("RescheduleBooking: slot conflict for booking=%d at %s %s",
		booking.ID, req.NewDate.Format(domain.DateFormat), req.NewStart)
	return ErrSlotConflict
}
