package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	serviceOptionRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/serviceoption"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/paymentservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo       BookingRepository
	availabilityRepo  AvailabilityRepository
	serviceOptionRepo ServiceOptionRepository
	paymentClient     PaymentClient
	notifyClient      NotifyClient
	txManager         TransactionManager
	cfg               Config
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	serviceOptionRepo ServiceOptionRepository,
	paymentClient PaymentClient,
	notifyClient NotifyClient,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Currency == "" {
		cfg.Currency = "cad"
	}
	return &UseCase{
		bookingRepo:       bookingRepo,
		availabilityRepo:  availabilityRepo,
		serviceOptionRepo: serviceOptionRepo,
		paymentClient:     paymentClient,
		notifyClient:      notifyClient,
		txManager:         txManager,
		cfg:               cfg,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case создания бронирования.
// Для карточных платежей оплата подтверждается ДО вставки брони;
// если после списания интервал успел занять конкурент, бронь не создаётся,
// а платёж попадает в лог для ручного возврата.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, therapist=%v, serviceOption=%d, date=%s, start=%s",
		req.ClientID, req.TherapistID, req.ServiceOptionID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе клиники
	now := uc.timeProvider.Now().In(uc.cfg.Location)

	// 3. Получаем вариант услуги: длительность и снимок цены
	option, err := uc.serviceOptionRepo.GetByID(ctx, req.ServiceOptionID)
	if err != nil {
		if errors.Is(err, serviceOptionRepo.ErrServiceOptionNotFound) {
			uc.logger.Warn("CreateBooking: service option id=%d not found", req.ServiceOptionID)
			return nil, ErrServiceOptionNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service option id=%d: %v", req.ServiceOptionID, err)
		return nil, fmt.Errorf("%w: failed to get service option: %w", ErrInternal, err)
	}

	if !option.IsActive {
		uc.logger.Warn("CreateBooking: service option id=%d is inactive", req.ServiceOptionID)
		return nil, ErrServiceOptionInactive
	}

	// 4. Валидация даты и минимального времени до сеанса
	if err := validateDate(req.Date, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req, now, uc.cfg.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
		return nil, err
	}

	// 5. Запрошенный интервал [start, start+duration)
	endTime, err := req.StartTime.AddMinutes(option.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot does not fit into the day: start=%s, duration=%d",
			req.StartTime, option.DurationMinutes)
		return nil, ErrSlotConflict
	}
	requested := domain.Interval{Start: req.StartTime, End: endTime}

	// 6. Определяем терапевтов-кандидатов
	therapistIDs, err := uc.resolveTherapists(ctx, req, option.ServiceID)
	if err != nil {
		return nil, err
	}
	if len(therapistIDs) == 0 {
		uc.logger.Warn("CreateBooking: no therapists offer service=%d", option.ServiceID)
		return nil, ErrNoTherapistAvailable
	}

	// 7. Для карты подтверждаем оплату до транзакции бронирования
	paymentRef, err := uc.confirmCardPayment(ctx, req, option)
	if err != nil {
		return nil, err
	}

	// 8. Сериализуемая транзакция: повторная проверка доступности под
	// блокировкой строк и вставка брони. При конфликте сериализации
	// менеджер транзакций повторяет весь блок.
	var created *domain.Booking

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		therapistID, err := uc.pickTherapist(txCtx, therapistIDs, req, requested)
		if err != nil {
			return err
		}

		booking := uc.buildBooking(req, option, therapistID, paymentRef)

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		// Оплата уже прошла, а бронь не создана: требуется ручной возврат
		if paymentRef != nil {
			uc.logger.Error("CreateBooking: payment captured but booking failed, manual refund required: intent=%s, client=%d: %v",
				*paymentRef, req.ClientID, txErr)
		}
		if errors.Is(txErr, ErrSlotConflict) || errors.Is(txErr, ErrNoTherapistAvailable) || errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, txErr)
	}

	// 9. Уведомление о создании брони, fire-and-forget
	uc.notifyClient.SendBookingEventAsync(&notifyservice.BookingEvent{
		Event:            "booking_created",
		BookingReference: created.Reference,
		ClientID:         created.ClientID,
		TherapistID:      created.TherapistID,
		ServiceName:      created.ServiceName,
		BookingDate:      created.BookingDate.Format(domain.DateFormat),
		StartTime:        created.StartTime.String(),
		Notes:            created.Notes,
	})

	uc.logger.Info("CreateBooking: created booking id=%d, ref=%s, therapist=%d, date=%s, start=%s",
		created.ID, created.Reference, created.TherapistID,
		created.BookingDate.Format(domain.DateFormat), created.StartTime)

	return buildResponse(created), nil
}

// resolveTherapists возвращает кандидатов: запрошенного терапевта
// (с проверкой, что он оказывает услугу) либо всех подходящих
func (uc *UseCase) resolveTherapists(ctx context.Context, req *Request, serviceID int64) ([]int64, error) {
	if req.TherapistID != nil {
		offers, err := uc.serviceOptionRepo.TherapistOffersService(ctx, *req.TherapistID, serviceID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check therapist=%d service=%d: %v",
				*req.TherapistID, serviceID, err)
			return nil, fmt.Errorf("%w: failed to check therapist service: %w", ErrInternal, err)
		}
		if !offers {
			uc.logger.Warn("CreateBooking: therapist=%d does not offer service=%d", *req.TherapistID, serviceID)
			return nil, ErrTherapistNotOffering
		}
		return []int64{*req.TherapistID}, nil
	}

	therapistIDs, err := uc.serviceOptionRepo.GetTherapistIDsForService(ctx, serviceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list therapists for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to list therapists: %w", ErrInternal, err)
	}
	return therapistIDs, nil
}

// confirmCardPayment создает и подтверждает платёж для карточного метода.
// Для остальных методов оплата принимается на месте, бронь остаётся с
// payment_status=pending.
func (uc *UseCase) confirmCardPayment(ctx context.Context, req *Request, option *domain.ServiceOption) (*string, error) {
	if req.PaymentMethod != domain.MethodCard {
		return nil, nil
	}

	amountCents := int64(option.Price * 100)

	intent, err := uc.paymentClient.CreatePaymentIntent(ctx, amountCents, uc.cfg.Currency, map[string]string{
		"clientId":        fmt.Sprintf("%d", req.ClientID),
		"serviceOptionId": fmt.Sprintf("%d", req.ServiceOptionID),
		"bookingDate":     req.Date.Format(domain.DateFormat),
		"startTime":       req.StartTime.String(),
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create payment intent for client=%d: %v", req.ClientID, err)
		return nil, uc.mapPaymentError(err)
	}

	result, err := uc.paymentClient.ConfirmPayment(ctx, intent.ID, *req.PaymentMethodID)
	if err != nil {
		uc.logger.Warn("CreateBooking: payment confirmation failed for client=%d, intent=%s: %v",
			req.ClientID, intent.ID, err)
		return nil, uc.mapPaymentError(err)
	}

	uc.logger.Info("CreateBooking: payment confirmed: intent=%s, amount=%d %s",
		result.PaymentIntentID, amountCents, uc.cfg.Currency)

	ref := result.PaymentIntentID
	return &ref, nil
}

func (uc *UseCase) mapPaymentError(err error) error {
	switch {
	case errors.Is(err, paymentservice.ErrCardDeclined),
		errors.Is(err, paymentservice.ErrCardExpired),
		errors.Is(err, paymentservice.ErrInvalidCVC):
		return fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	default:
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
}

// pickTherapist проверяет доступность запрошенного интервала под блокировкой
// строк и выбирает терапевта. При автоподборе берётся наименее загруженный
// на эту дату; при равенстве - с наименьшим ID.
func (uc *UseCase) pickTherapist(ctx context.Context, therapistIDs []int64, req *Request, requested domain.Interval) (int64, error) {
	type candidate struct {
		id     int64
		booked int
	}

	var available []candidate

	for _, therapistID := range therapistIDs {
		rules, err := uc.availabilityRepo.GetForDate(ctx, therapistID, req.Date)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
		}

		// Внутри транзакции одиночная дата читается с FOR UPDATE:
		// конкурирующая запись на того же терапевта ждёт или падает
		// с конфликтом сериализации
		filter := domain.BookingsFilter{
			TherapistID:     &therapistID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}
		bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		open := domain.OpenIntervals(rules, bookings, req.Date)
		if !intervalFits(open, requested) {
			continue
		}

		available = append(available, candidate{id: therapistID, booked: len(bookings)})
	}

	if len(available) == 0 {
		if req.TherapistID != nil {
			return 0, ErrSlotConflict
		}
		return 0, ErrNoTherapistAvailable
	}

	best := available[0]
	for _, c := range available[1:] {
		if c.booked < best.booked || (c.booked == best.booked && c.id < best.id) {
			best = c
		}
	}
	return best.id, nil
}

// intervalFits проверяет, что запрошенный интервал целиком лежит
// в одном из открытых интервалов
func intervalFits(open []domain.Interval, requested domain.Interval) bool {
	for _, o := range open {
		if o.Contains(requested) {
			return true
		}
	}
	return false
}

func (uc *UseCase) buildBooking(req *Request, option *domain.ServiceOption, therapistID int64, paymentRef *string) *domain.Booking {
	status := domain.StatusPendingConfirmation
	if req.CreatedByStaff {
		status = domain.StatusConfirmed
	}

	paymentStatus := domain.PaymentPending
	if paymentRef != nil {
		paymentStatus = domain.PaymentPaid
	}

	return &domain.Booking{
		Reference:       uuid.NewString(),
		TherapistID:     therapistID,
		ServiceOptionID: option.ID,
		ClientID:        req.ClientID,
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: option.DurationMinutes,
		Status:          status,
		SessionStatus:   domain.SessionScheduled,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   req.PaymentMethod,
		ServiceName:     option.Name,
		PriceAtBooking:  option.Price,
		PaymentRef:      paymentRef,
		Notes:           req.Notes,
	}
}

func buildResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		TherapistID:     b.TherapistID,
		ServiceOptionID: b.ServiceOptionID,
		ClientID:        b.ClientID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		SessionStatus:   string(b.SessionStatus),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentMethod:   string(b.PaymentMethod),
		ServiceName:     b.ServiceName,
		PriceAtBooking:  b.PriceAtBooking,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
