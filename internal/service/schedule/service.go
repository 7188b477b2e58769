package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/schedule/models"
)

// Config параметры сервиса расписаний
type Config struct {
	Location *time.Location
}

// Service сервис агрегированных представлений расписания для персонала
type Service struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	cfg              Config
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		cfg:              cfg,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetDaySchedule возвращает расписание терапевта на день: действующие
// рабочие окна, вычеты time-off, бронирования в порядке начала и
// оставшиеся свободные интервалы
func (s *Service) GetDaySchedule(ctx context.Context, therapistID int64, date time.Time) (*models.DaySchedule, error) {
	s.logger.Info("GetDaySchedule: therapist=%d, date=%s", therapistID, date.Format(domain.DateFormat))

	if therapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return s.daySchedule(ctx, therapistID, date)
}

// GetWeekSchedule возвращает расписание терапевта на 7 дней,
// начиная с weekStart
func (s *Service) GetWeekSchedule(ctx context.Context, therapistID int64, weekStart time.Time) (*models.WeekSchedule, error) {
	s.logger.Info("GetWeekSchedule: therapist=%d, weekStart=%s", therapistID, weekStart.Format(domain.DateFormat))

	if therapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}
	if weekStart.IsZero() {
		return nil, fmt.Errorf("%w: weekStart is required", ErrInvalidInput)
	}

	days := make([]*models.DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		day, err := s.daySchedule(ctx, therapistID, weekStart.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return &models.WeekSchedule{
		TherapistID: therapistID,
		WeekStart:   weekStart,
		Days:        days,
	}, nil
}

// GetSessionsNeedingAttention возвращает сессии, требующие внимания
// персонала: всё ещё scheduled после времени начала либо in_progress
// дольше двух часов
func (s *Service) GetSessionsNeedingAttention(ctx context.Context) (*models.SessionAttentionResponse, error) {
	now := s.timeProvider.Now().In(s.cfg.Location)

	s.logger.Info("GetSessionsNeedingAttention: checking sessions at %s", now.Format(time.RFC3339))

	statuses := []domain.SessionStatus{domain.SessionScheduled, domain.SessionInProgress}
	bookings, err := s.bookingRepo.GetBySessionStatuses(ctx, statuses, now)
	if err != nil {
		s.logger.Error("GetSessionsNeedingAttention: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSessionsNeedingAttention - repository error: %w", ErrInternal, err)
	}

	items := make([]*models.SessionAttentionItem, 0, len(bookings))
	for _, b := range bookings {
		reason, needs := domain.SessionAttention(b, now)
		if !needs {
			continue
		}
		items = append(items, &models.SessionAttentionItem{
			BookingID:     b.ID,
			Reference:     b.Reference,
			TherapistID:   b.TherapistID,
			ClientID:      b.ClientID,
			BookingDate:   b.BookingDate,
			StartTime:     b.StartTime.String(),
			ServiceName:   b.ServiceName,
			SessionStatus: string(b.SessionStatus),
			Reason:        string(reason),
		})
	}

	// Самые давние сессии первыми
	sort.Slice(items, func(a, b int) bool {
		if !items[a].BookingDate.Equal(items[b].BookingDate) {
			return items[a].BookingDate.Before(items[b].BookingDate)
		}
		return items[a].StartTime < items[b].StartTime
	})

	s.logger.Info("GetSessionsNeedingAttention: %d of %d sessions need attention", len(items), len(bookings))
	return &models.SessionAttentionResponse{Sessions: items, Total: len(items)}, nil
}

// Вспомогательные методы

func (s *Service) daySchedule(ctx context.Context, therapistID int64, date time.Time) (*models.DaySchedule, error) {
	rules, err := s.availabilityRepo.GetForDate(ctx, therapistID, date)
	if err != nil {
		s.logger.Error("daySchedule: failed to get rules for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %w", ErrInternal, err)
	}

	filter := domain.BookingsFilter{
		TherapistID:     &therapistID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}
	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("daySchedule: failed to get bookings for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	scheduled := make([]models.ScheduledBooking, 0, len(bookings))
	for _, b := range bookings {
		scheduled = append(scheduled, models.FromDomainBookingSchedule(b))
	}

	return &models.DaySchedule{
		TherapistID:    therapistID,
		Date:           date,
		WorkingWindows: models.FromIntervals(domain.ResolveWorkingWindows(rules, date)),
		TimeOff:        models.FromIntervals(domain.ResolveTimeOff(rules, date)),
		Bookings:       scheduled,
		OpenIntervals:  models.FromIntervals(domain.OpenIntervals(rules, bookings, date)),
	}, nil
}
