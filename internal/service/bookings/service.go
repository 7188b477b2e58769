package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	bookingRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/booking"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings/models"
)

// Config параметры сервиса бронирований
type Config struct {
	Location *time.Location
}

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	notifyClient NotifyClient
	cfg          Config
	nowFn        func() time.Time
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifyClient NotifyClient,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		cfg:          cfg,
		nowFn:        time.Now,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент может видеть только своё бронирование; сотрудник клиники - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isStaff bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if !isStaff && booking.ClientID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по внешнему UUID-идентификатору
func (s *Service) GetByReference(ctx context.Context, reference string, userID int64, isStaff bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking ref=%s for user=%d", reference, userID)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %w", ErrInternal, err)
	}

	if !isStaff && booking.ClientID != userID {
		s.logger.Warn("GetByReference: access denied for user=%d to booking ref=%s", userID, reference)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает занятый интервал.
// Клиент может отменить только своё бронирование (cancelled_by_client),
// сотрудник клиники - любое (cancelled_by_staff).
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от того, кто отменяет
	var cancelStatus domain.BookingStatus
	switch {
	case req.IsStaff:
		cancelStatus = domain.StatusCancelledByStaff
	case booking.ClientID == req.UserID:
		cancelStatus = domain.StatusCancelledByClient
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.notifyEvent("booking_cancelled", booking)

	s.logger.Info("Cancel: cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования.
// Доступно только сотрудникам клиники; переходы ограничены таблицей
// допустимых переходов (терминальные статусы не меняются).
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
	}

	if newStatus == domain.StatusConfirmed {
		s.notifyEvent("booking_confirmed", booking)
	}

	s.logger.Info("UpdateStatus: updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// UpdateSessionStatus обновляет статус сессии (прогресс визита)
func (s *Service) UpdateSessionStatus(ctx context.Context, bookingID int64, req *models.UpdateSessionStatusRequest) error {
	s.logger.Info("UpdateSessionStatus: updating booking id=%d to session status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "UpdateSessionStatus")
	if err != nil {
		return err
	}

	newStatus, err := models.ToDomainSessionStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateSessionStatus: invalid session status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	if !domain.CanSessionTransitionTo(booking.SessionStatus, newStatus) {
		s.logger.Warn("UpdateSessionStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.SessionStatus, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.SessionStatus, newStatus)
	}

	if err := s.bookingRepo.UpdateSessionStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateSessionStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateSessionStatus - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateSessionStatus: updated booking id=%d to session status=%s", bookingID, newStatus)
	return nil
}

// MarkNoShow отмечает неявку клиента. Интервал остаётся занятым для истории,
// отметка возможна только после начала сеанса.
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, req *models.MarkNoShowRequest) error {
	s.logger.Info("MarkNoShow: marking booking id=%d as no-show by user=%d", bookingID, req.MarkedBy)

	booking, err := s.getBooking(ctx, bookingID, "MarkNoShow")
	if err != nil {
		return err
	}

	if !booking.CanTransitionTo(domain.StatusNoShow) {
		s.logger.Warn("MarkNoShow: booking id=%d in status %s cannot be marked no-show", bookingID, booking.Status)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusNoShow)
	}

	now := s.nowFn().In(s.cfg.Location)
	start, err := booking.StartOn(s.cfg.Location)
	if err != nil {
		s.logger.Error("MarkNoShow: failed to compute start time for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - invalid start time: %w", ErrInternal, err)
	}
	if now.Before(start) {
		s.logger.Warn("MarkNoShow: booking id=%d has not started yet", bookingID)
		return ErrNoShowTooEarly
	}

	if err := s.bookingRepo.MarkNoShow(ctx, bookingID, req.Reason, req.MarkedBy); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: marked booking id=%d as no-show", bookingID)
	return nil
}

// MarkPaid отмечает оплату на месте (наличные, interac, страховка)
func (s *Service) MarkPaid(ctx context.Context, bookingID int64, paymentRef *string) error {
	s.logger.Info("MarkPaid: marking booking id=%d as paid", bookingID)

	booking, err := s.getBooking(ctx, bookingID, "MarkPaid")
	if err != nil {
		return err
	}

	if booking.PaymentStatus == domain.PaymentPaid {
		s.logger.Info("MarkPaid: booking id=%d is already paid", bookingID)
		return nil
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid, paymentRef); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("MarkPaid: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkPaid - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("MarkPaid: marked booking id=%d as paid", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) notifyEvent(event string, booking *domain.Booking) {
	s.notifyClient.SendBookingEventAsync(&notifyservice.BookingEvent{
		Event:            event,
		BookingReference: booking.Reference,
		ClientID:         booking.ClientID,
		TherapistID:      booking.TherapistID,
		ServiceName:      booking.ServiceName,
		BookingDate:      booking.BookingDate.Format(domain.DateFormat),
		StartTime:        booking.StartTime.String(),
		Notes:            booking.Notes,
	})
}
