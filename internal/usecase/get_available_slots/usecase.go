package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	serviceOptionRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/serviceoption"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo       BookingRepository
	availabilityRepo  AvailabilityRepository
	serviceOptionRepo ServiceOptionRepository
	cfg               Config
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	serviceOptionRepo ServiceOptionRepository,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:       bookingRepo,
		availabilityRepo:  availabilityRepo,
		serviceOptionRepo: serviceOptionRepo,
		cfg:               cfg,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: therapist=%v, serviceOption=%d, date=%s",
		req.TherapistID, req.ServiceOptionID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе клиники - единая дисциплина
	// для всех календарных вычислений
	now := uc.timeProvider.Now().In(uc.cfg.Location)

	// 3. Получаем вариант услуги (длительность)
	option, err := uc.serviceOptionRepo.GetByID(ctx, req.ServiceOptionID)
	if err != nil {
		if errors.Is(err, serviceOptionRepo.ErrServiceOptionNotFound) {
			uc.logger.Warn("GetAvailableSlots: service option id=%d not found", req.ServiceOptionID)
			return nil, ErrServiceOptionNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service option id=%d: %v", req.ServiceOptionID, err)
		return nil, fmt.Errorf("%w: failed to get service option: %w", ErrInternal, err)
	}

	if !option.IsActive {
		uc.logger.Warn("GetAvailableSlots: service option id=%d is inactive", req.ServiceOptionID)
		return nil, ErrServiceOptionInactive
	}

	// 4. Валидация даты
	if err := validateDate(req.Date, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Определяем терапевтов-кандидатов
	therapistIDs, err := uc.resolveTherapists(ctx, req, option.ServiceID)
	if err != nil {
		return nil, err
	}

	if len(therapistIDs) == 0 {
		uc.logger.Info("GetAvailableSlots: no therapists offer service=%d", option.ServiceID)
		return uc.emptyResponse(req, option.DurationMinutes), nil
	}

	// 6. Для каждого терапевта вычисляем кандидатов: рабочие окна минус
	// time-off минус активные бронирования, нарезанные с шагом гранулярности
	perTherapist := make(map[int64][]types.TimeString, len(therapistIDs))

	for _, therapistID := range therapistIDs {
		candidates, err := uc.candidatesForTherapist(ctx, therapistID, req.Date, option.DurationMinutes)
		if err != nil {
			return nil, err
		}
		perTherapist[therapistID] = candidates
	}

	// 7. Объединяем кандидатов с дедупликацией по времени начала
	slots := mergeCandidates(perTherapist, option.DurationMinutes, len(therapistIDs))

	// 8. Фильтруем по минимальному времени до бронирования (только сегодня)
	slots = filterByNotice(slots, req.Date, now, uc.cfg.MinBookingNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: generated %d slots for serviceOption=%d, date=%s, therapists=%d",
		len(slots), req.ServiceOptionID, req.Date.Format(domain.DateFormat), len(therapistIDs))

	return &Response{
		Date:            req.Date,
		TherapistID:     req.TherapistID,
		ServiceOptionID: req.ServiceOptionID,
		DurationMinutes: option.DurationMinutes,
		Slots:           slots,
	}, nil
}

// resolveTherapists возвращает список терапевтов для вычисления слотов:
// запрошенного (с проверкой, что он оказывает услугу) либо всех подходящих
func (uc *UseCase) resolveTherapists(ctx context.Context, req *Request, serviceID int64) ([]int64, error) {
	if req.TherapistID != nil {
		offers, err := uc.serviceOptionRepo.TherapistOffersService(ctx, *req.TherapistID, serviceID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to check therapist=%d service=%d: %v",
				*req.TherapistID, serviceID, err)
			return nil, fmt.Errorf("%w: failed to check therapist service: %w", ErrInternal, err)
		}
		if !offers {
			uc.logger.Warn("GetAvailableSlots: therapist=%d does not offer service=%d", *req.TherapistID, serviceID)
			return nil, ErrTherapistNotOffering
		}
		return []int64{*req.TherapistID}, nil
	}

	therapistIDs, err := uc.serviceOptionRepo.GetTherapistIDsForService(ctx, serviceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list therapists for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to list therapists: %w", ErrInternal, err)
	}
	return therapistIDs, nil
}

// candidatesForTherapist вычисляет времена начала слотов одного терапевта
func (uc *UseCase) candidatesForTherapist(ctx context.Context, therapistID int64, date time.Time, durationMinutes int) ([]types.TimeString, error) {
	rules, err := uc.availabilityRepo.GetForDate(ctx, therapistID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
	}

	filter := domain.BookingsFilter{
		TherapistID:     &therapistID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false, // Отменённые бронирования слот не занимают
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	open := domain.OpenIntervals(rules, bookings, date)

	candidates, err := generateCandidates(open, durationMinutes, uc.cfg.GranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %w", ErrInternal, err)
	}

	return candidates, nil
}

func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		TherapistID:     req.TherapistID,
		ServiceOptionID: req.ServiceOptionID,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}
}
