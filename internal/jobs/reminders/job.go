package reminders

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// NotifyClient интерфейс сервиса уведомлений
type NotifyClient interface {
	SendBookingEventAsync(event *notifyservice.BookingEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job cron-задача рассылки напоминаний о завтрашних сеансах
type Job struct {
	bookingRepo  BookingRepository
	notifyClient NotifyClient
	location     *time.Location
	cron         *cron.Cron
	logger       Logger
}

// NewJob создает задачу напоминаний
func NewJob(
	bookingRepo BookingRepository,
	notifyClient NotifyClient,
	location *time.Location,
	logger Logger,
) *Job {
	if location == nil {
		location = time.UTC
	}
	return &Job{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		location:     location,
		cron:         cron.New(cron.WithLocation(location)),
		logger:       logger,
	}
}

// Start запускает планировщик по cron-выражению, например "0 18 * * *"
func (j *Job) Start(spec string) error {
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Reminders: scheduled with spec %q in %s", spec, j.location)
	return nil
}

// Stop останавливает планировщик и дожидается текущего запуска
func (j *Job) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("Reminders: stopped")
}

// Run отправляет напоминания по всем активным бронированиям на завтра
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().In(j.location)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.location).AddDate(0, 0, 1)

	filter := domain.BookingsFilter{
		StartDate:       &tomorrow,
		EndDate:         &tomorrow,
		IncludeInactive: false,
	}

	bookings, err := j.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		j.logger.Error("Reminders: failed to load bookings for %s: %v",
			tomorrow.Format(domain.DateFormat), err)
		return
	}

	sent := 0
	for _, b := range bookings {
		// Напоминаем только о предстоящих сеансах
		if b.Status != domain.StatusPendingConfirmation && b.Status != domain.StatusConfirmed {
			continue
		}

		j.notifyClient.SendBookingEventAsync(&notifyservice.BookingEvent{
			Event:            "booking_reminder",
			BookingReference: b.Reference,
			ClientID:         b.ClientID,
			TherapistID:      b.TherapistID,
			ServiceName:      b.ServiceName,
			BookingDate:      b.BookingDate.Format(domain.DateFormat),
			StartTime:        b.StartTime.String(),
			Notes:            b.Notes,
		})
		sent++
	}

	j.logger.Info("Reminders: sent %d reminders for %s", sent, tomorrow.Format(domain.DateFormat))
}
