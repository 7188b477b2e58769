package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	bookingStorage "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/booking"
	"github.com/remedyhq/RMT-SchedulingService/internal/integrations/notifyservice"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings/models"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

type fakeRepo struct {
	byID map[int64]*domain.Booking
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	f := &fakeRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	for _, b := range f.byID {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, bookingStorage.ErrBookingNotFound
}

func (f *fakeRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.ClientID != clientID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) UpdateSessionStatus(_ context.Context, id int64, status domain.SessionStatus) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.SessionStatus = status
	return nil
}

func (f *fakeRepo) UpdatePaymentStatus(_ context.Context, id int64, status domain.PaymentStatus, paymentRef *string) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.PaymentStatus = status
	if paymentRef != nil {
		b.PaymentRef = paymentRef
	}
	return nil
}

func (f *fakeRepo) MarkNoShow(_ context.Context, id int64, reason string, markedBy int64) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.Status = domain.StatusNoShow
	b.SessionStatus = domain.SessionNoShow
	b.NoShowReason = &reason
	b.NoShowMarkedBy = &markedBy
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.Status = status
	b.SessionStatus = domain.SessionCancelled
	b.CancellationReason = &reason
	return nil
}

type fakeNotifyClient struct {
	events []*notifyservice.BookingEvent
}

func (f *fakeNotifyClient) SendBookingEventAsync(event *notifyservice.BookingEvent) {
	f.events = append(f.events, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var bookingDate = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

func testBooking(id, clientID int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Reference:       "11111111-2222-3333-4444-555555555555",
		TherapistID:     7,
		ClientID:        clientID,
		BookingDate:     bookingDate,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		SessionStatus:   domain.SessionScheduled,
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   domain.MethodCash,
		ServiceName:     "Deep Tissue 60",
		PriceAtBooking:  120,
	}
}

func newTestService(repo *fakeRepo, now time.Time) (*Service, *fakeNotifyClient) {
	notify := &fakeNotifyClient{}
	svc := NewService(repo, notify, Config{}, nopLogger{})
	svc.nowFn = func() time.Time { return now }
	return svc, notify
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeRepo(testBooking(1, 42))
	svc, _ := newTestService(repo, bookingDate)

	// Владелец видит свою бронь
	resp, err := svc.GetByID(context.Background(), 1, 42, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Чужой клиент - нет
	_, err = svc.GetByID(context.Background(), 1, 99, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Сотрудник видит любую
	_, err = svc.GetByID(context.Background(), 1, 99, true)
	assert.NoError(t, err)
}

func TestGetByReference(t *testing.T) {
	repo := newFakeRepo(testBooking(1, 42))
	svc, _ := newTestService(repo, bookingDate)

	resp, err := svc.GetByReference(context.Background(), "11111111-2222-3333-4444-555555555555", 42, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByReference(context.Background(), "missing-ref", 42, false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClientBookings_StatusFilter(t *testing.T) {
	cancelled := testBooking(2, 42)
	cancelled.Status = domain.StatusCancelledByClient

	repo := newFakeRepo(testBooking(1, 42), cancelled, testBooking(3, 99))
	svc, _ := newTestService(repo, bookingDate)

	resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{ClientID: 42})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	status := "cancelled_by_client"
	resp, err = svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientID: 42,
		Status:   &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)

	bad := "paused"
	_, err = svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientID: 42,
		Status:   &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeRepo(testBooking(1, 42))
	svc, notify := newTestService(repo, bookingDate)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByClient, repo.byID[1].Status)
	require.Len(t, notify.events, 1)
	assert.Equal(t, "booking_cancelled", notify.events[0].Event)
}

func TestCancel_ByStaff(t *testing.T) {
	repo := newFakeRepo(testBooking(1, 42))
	svc, _ := newTestService(repo, bookingDate)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 5, IsStaff: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByStaff, repo.byID[1].Status)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := newFakeRepo(testBooking(1, 42))
	svc, notify := newTestService(repo, bookingDate)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, repo.byID[1].Status)
	assert.Empty(t, notify.events)
}

func TestCancel_TerminalStatus(t *testing.T) {
	b := testBooking(1, 42)
	b.Status = domain.StatusCompleted
	repo := newFakeRepo(b)
	svc, _ := newTestService(repo, bookingDate)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	b := testBooking(1, 42)
	b.Status = domain.StatusPendingConfirmation
	repo := newFakeRepo(b)
	svc, notify := newTestService(repo, bookingDate)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed", UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.byID[1].Status)

	// Подтверждение брони уведомляет клиента
	require.Len(t, notify.events, 1)
	assert.Equal(t, "booking_confirmed", notify.events[0].Event)

	// Недопустимый переход: confirmed -> pending_confirmation
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "pending_confirmation", UserID: 5})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "paused", UserID: 5})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateSessionStatus(t *testing.T) {
	repo := newFakeRepo(testBooking(1, 42))
	svc, _ := newTestService(repo, bookingDate)

	err := svc.UpdateSessionStatus(context.Background(), 1, &models.UpdateSessionStatusRequest{Status: "in_progress", UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInProgress, repo.byID[1].SessionStatus)

	err = svc.UpdateSessionStatus(context.Background(), 1, &models.UpdateSessionStatusRequest{Status: "completed", UserID: 5})
	require.NoError(t, err)

	// Из терминального статуса сессии выхода нет
	err = svc.UpdateSessionStatus(context.Background(), 1, &models.UpdateSessionStatusRequest{Status: "in_progress", UserID: 5})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkNoShow(t *testing.T) {
	reason := "client did not arrive"

	t.Run("after start succeeds", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, 42))
		// Сеанс начался в 10:00, сейчас 10:20
		svc, _ := newTestService(repo, bookingDate.Add(10*time.Hour+20*time.Minute))

		err := svc.MarkNoShow(context.Background(), 1, &models.MarkNoShowRequest{MarkedBy: 5, Reason: reason})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusNoShow, repo.byID[1].Status)
		assert.Equal(t, domain.SessionNoShow, repo.byID[1].SessionStatus)
		require.NotNil(t, repo.byID[1].NoShowMarkedBy)
		assert.Equal(t, int64(5), *repo.byID[1].NoShowMarkedBy)
	})

	t.Run("before start rejected", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, 42))
		svc, _ := newTestService(repo, bookingDate.Add(9*time.Hour))

		err := svc.MarkNoShow(context.Background(), 1, &models.MarkNoShowRequest{MarkedBy: 5, Reason: reason})
		assert.ErrorIs(t, err, ErrNoShowTooEarly)
		assert.Equal(t, domain.StatusConfirmed, repo.byID[1].Status)
	})

	t.Run("terminal status rejected", func(t *testing.T) {
		b := testBooking(1, 42)
		b.Status = domain.StatusCompleted
		repo := newFakeRepo(b)
		svc, _ := newTestService(repo, bookingDate.Add(12*time.Hour))

		err := svc.MarkNoShow(context.Background(), 1, &models.MarkNoShowRequest{MarkedBy: 5, Reason: reason})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestMarkPaid(t *testing.T) {
	repo := newFakeRepo(testBooking(1, 42))
	svc, _ := newTestService(repo, bookingDate)

	ref := "interac-456"
	require.NoError(t, svc.MarkPaid(context.Background(), 1, &ref))

	assert.Equal(t, domain.PaymentPaid, repo.byID[1].PaymentStatus)
	require.NotNil(t, repo.byID[1].PaymentRef)
	assert.Equal(t, "interac-456", *repo.byID[1].PaymentRef)

	// Повторная отметка идемпотентна
	require.NoError(t, svc.MarkPaid(context.Background(), 1, nil))
	assert.Equal(t, "interac-456", *repo.byID[1].PaymentRef)
}

func TestMarkPaid_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), bookingDate)
	assert.ErrorIs(t, svc.MarkPaid(context.Background(), 404, nil), ErrBookingNotFound)
}
