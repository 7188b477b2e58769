package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	bookingStorage "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/booking"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

type fakeBookingRepo struct {
	byID          map[int64]*domain.Booking
	rescheduled   bool
	newDate       time.Time
	newStart      types.TimeString
	rescheduledID int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
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

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime types.TimeString) error {
	f.rescheduled = true
	f.rescheduledID = id
	f.newDate = date
	f.newStart = startTime
	return nil
}

type fakeAvailabilityRepo struct {
	rules map[int64][]*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetForDate(_ context.Context, therapistID int64, _ time.Time) ([]*domain.AvailabilityRule, error) {
	return f.rules[therapistID], nil
}

type fakeNotifyClient struct {
	events []*notifyservice.BookingEvent
}

func (f *fakeNotifyClient) SendBookingEventAsync(event *notifyservice.BookingEvent) {
	f.events = append(f.events, event)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	monday  = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC) // понедельник
	tuesday = monday.AddDate(0, 0, 1)
	testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
)

func allWeekWorkingHours(therapistID int64, start, end string) []*domain.AvailabilityRule {
	rules := make([]*domain.AvailabilityRule, 0, 7)
	for d := 0; d < 7; d++ {
		dow := d
		rules = append(rules, &domain.AvailabilityRule{
			TherapistID: therapistID,
			Type:        domain.RuleWorkingHours,
			DayOfWeek:   &dow,
			StartTime:   types.TimeString(start),
			EndTime:     types.TimeString(end),
		})
	}
	return rules
}

func newTestEnv(bookings ...*domain.Booking) (*UseCase, *fakeBookingRepo, *fakeNotifyClient) {
	repo := &fakeBookingRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.byID[b.ID] = b
	}
	avail := &fakeAvailabilityRepo{rules: map[int64][]*domain.AvailabilityRule{
		7: allWeekWorkingHours(7, "09:00", "17:00"),
	}}
	notify := &fakeNotifyClient{}

	uc := NewUseCase(repo, avail, notify, fakeTxManager{}, Config{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc, repo, notify
}

func confirmedBooking(id int64, date time.Time, start string) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Reference:       "ref-1",
		TherapistID:     7,
		ClientID:        42,
		BookingDate:     date,
		StartTime:       types.TimeString(start),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		SessionStatus:   domain.SessionScheduled,
	}
}

func TestExecute_MovesBooking(t *testing.T) {
	uc, repo, notify := newTestEnv(confirmedBooking(1, monday, "10:00"))

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   tuesday,
		NewStart:  "14:00",
	})
	require.NoError(t, err)

	assert.True(t, repo.rescheduled)
	assert.Equal(t, int64(1), repo.rescheduledID)
	assert.Equal(t, types.TimeString("14:00"), repo.newStart)

	assert.Equal(t, tuesday, resp.BookingDate)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, string(domain.SessionScheduled), resp.SessionStatus)

	require.Len(t, notify.events, 1)
	assert.Equal(t, "booking_rescheduled", notify.events[0].Event)
}

// Перенос в пределах того же дня: собственный интервал брони
// не должен считаться занятым
func TestExecute_OwnIntervalExcluded(t *testing.T) {
	uc, repo, _ := newTestEnv(confirmedBooking(1, monday, "10:00"))

	// Сдвиг на полчаса: новый интервал 10:30-11:30 пересекается со старым
	// 10:00-11:00, но это та же самая бронь
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   monday,
		NewStart:  "10:30",
	})
	require.NoError(t, err)
	assert.True(t, repo.rescheduled)
}

func TestExecute_ConflictWithOtherBooking(t *testing.T) {
	uc, repo, notify := newTestEnv(
		confirmedBooking(1, monday, "10:00"),
		confirmedBooking(2, monday, "14:00"),
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   monday,
		NewStart:  "14:30",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, repo.rescheduled)
	assert.Empty(t, notify.events)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc, repo, _ := newTestEnv(confirmedBooking(1, monday, "10:00"))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   monday,
		NewStart:  "16:30",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, repo.rescheduled)
}

func TestExecute_TerminalStatusCannotBeRescheduled(t *testing.T) {
	b := confirmedBooking(1, monday, "10:00")
	b.Status = domain.StatusCompleted
	uc, repo, _ := newTestEnv(b)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   tuesday,
		NewStart:  "14:00",
	})
	assert.ErrorIs(t, err, ErrCannotReschedule)
	assert.False(t, repo.rescheduled)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _, _ := newTestEnv()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 404,
		NewDate:   tuesday,
		NewStart:  "14:00",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc, _, _ := newTestEnv(confirmedBooking(1, monday, "10:00"))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		NewDate:   testNow.AddDate(0, 0, -1),
		NewStart:  "14:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
