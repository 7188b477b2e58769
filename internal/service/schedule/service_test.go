package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/schedule/models"
)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	attention []*domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if filter.TherapistID != nil && b.TherapistID != *filter.TherapistID {
			continue
		}
		if filter.StartDate != nil && !sameDay(b.BookingDate, *filter.StartDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetBySessionStatuses(_ context.Context, _ []domain.SessionStatus, _ time.Time) ([]*domain.Booking, error) {
	return f.attention, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type fakeAvailabilityRepo struct {
	rules map[int64][]*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetForDate(_ context.Context, therapistID int64, _ time.Time) ([]*domain.AvailabilityRule, error) {
	return f.rules[therapistID], nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC) // понедельник

func dow(d int) *int { return &d }

func newTestService(bookings *fakeBookingRepo, rules map[int64][]*domain.AvailabilityRule) *Service {
	svc := NewService(bookings, &fakeAvailabilityRepo{rules: rules}, Config{}, nopLogger{})
	svc.timeProvider = &fixedTime{now: monday.Add(12 * time.Hour)}
	return svc
}

func weekdayRules(therapistID int64) map[int64][]*domain.AvailabilityRule {
	rules := make([]*domain.AvailabilityRule, 0, 7)
	for d := 1; d <= 5; d++ {
		rules = append(rules, &domain.AvailabilityRule{
			TherapistID: therapistID,
			Type:        domain.RuleWorkingHours,
			DayOfWeek:   dow(d),
			StartTime:   "09:00",
			EndTime:     "17:00",
		})
	}
	rules = append(rules, &domain.AvailabilityRule{
		TherapistID: therapistID,
		Type:        domain.RuleTimeOff,
		DayOfWeek:   dow(1),
		StartTime:   "12:00",
		EndTime:     "13:00",
	})
	return map[int64][]*domain.AvailabilityRule{therapistID: rules}
}

func TestGetDaySchedule(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID: 1, TherapistID: 7, ClientID: 42,
			BookingDate: monday, StartTime: "10:00", DurationMinutes: 60,
			Status: domain.StatusConfirmed, SessionStatus: domain.SessionScheduled,
			ServiceName: "Deep Tissue 60",
		},
	}}
	svc := newTestService(bookings, weekdayRules(7))

	day, err := svc.GetDaySchedule(context.Background(), 7, monday)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00-17:00"}, ranges(day.WorkingWindows))
	assert.Equal(t, []string{"12:00-13:00"}, ranges(day.TimeOff))

	require.Len(t, day.Bookings, 1)
	assert.Equal(t, "10:00", day.Bookings[0].StartTime)
	assert.Equal(t, "11:00", day.Bookings[0].EndTime)

	assert.Equal(t, []string{"09:00-10:00", "11:00-12:00", "13:00-17:00"}, ranges(day.OpenIntervals))
}

func TestGetDaySchedule_DayWithoutRules(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, weekdayRules(7))

	// Воскресенье: правил нет, всё пусто
	sunday := monday.AddDate(0, 0, 6)
	day, err := svc.GetDaySchedule(context.Background(), 7, sunday)
	require.NoError(t, err)

	assert.Empty(t, day.WorkingWindows)
	assert.Empty(t, day.Bookings)
	assert.Empty(t, day.OpenIntervals)
}

func TestGetDaySchedule_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, nil)

	_, err := svc.GetDaySchedule(context.Background(), 0, monday)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetDaySchedule(context.Background(), 7, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetWeekSchedule(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, weekdayRules(7))

	week, err := svc.GetWeekSchedule(context.Background(), 7, monday)
	require.NoError(t, err)

	require.Len(t, week.Days, 7)
	assert.Equal(t, monday, week.Days[0].Date)
	assert.Equal(t, monday.AddDate(0, 0, 6), week.Days[6].Date)

	// Будни рабочие, выходные пустые
	assert.NotEmpty(t, week.Days[0].WorkingWindows)
	assert.NotEmpty(t, week.Days[4].WorkingWindows)
	assert.Empty(t, week.Days[5].WorkingWindows)
	assert.Empty(t, week.Days[6].WorkingWindows)
}

func TestGetSessionsNeedingAttention(t *testing.T) {
	overdue := &domain.Booking{
		ID: 1, Reference: "ref-1", TherapistID: 7, ClientID: 42,
		BookingDate: monday, StartTime: "10:00", DurationMinutes: 60,
		SessionStatus: domain.SessionScheduled,
	}
	stuck := &domain.Booking{
		ID: 2, Reference: "ref-2", TherapistID: 7, ClientID: 43,
		BookingDate: monday, StartTime: "09:00", DurationMinutes: 60,
		SessionStatus: domain.SessionInProgress,
	}
	fine := &domain.Booking{
		ID: 3, Reference: "ref-3", TherapistID: 7, ClientID: 44,
		BookingDate: monday, StartTime: "14:00", DurationMinutes: 60,
		SessionStatus: domain.SessionScheduled,
	}

	bookings := &fakeBookingRepo{attention: []*domain.Booking{overdue, stuck, fine}}
	svc := newTestService(bookings, nil) // now = понедельник 12:00

	resp, err := svc.GetSessionsNeedingAttention(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, resp.Total)

	// Сортировка: самые давние первыми
	assert.Equal(t, int64(2), resp.Sessions[0].BookingID)
	assert.Equal(t, string(domain.AttentionOverdueInProgress), resp.Sessions[0].Reason)

	assert.Equal(t, int64(1), resp.Sessions[1].BookingID)
	assert.Equal(t, string(domain.AttentionOverdue), resp.Sessions[1].Reason)
}

func ranges(trs []models.TimeRange) []string {
	out := make([]string, 0, len(trs))
	for _, tr := range trs {
		out = append(out, tr.StartTime+"-"+tr.EndTime)
	}
	return out
}
