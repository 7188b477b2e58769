package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPendingConfirmation, StatusConfirmed, true},
		{StatusPendingConfirmation, StatusCancelledByClient, true},
		{StatusPendingConfirmation, StatusCancelledByStaff, true},
		{StatusPendingConfirmation, StatusNoShow, true},
		{StatusPendingConfirmation, StatusCompleted, false},

		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelledByClient, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPendingConfirmation, false},

		// Терминальные статусы: никаких дальнейших переходов
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelledByClient, StatusConfirmed, false},
		{StatusCancelledByStaff, StatusPendingConfirmation, false},
		{StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	// Отменённые бронирования освобождают слот, неявка - нет
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPendingConfirmation, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusNoShow, true},
		{StatusCancelledByClient, false},
		{StatusCancelledByStaff, false},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.status}
		assert.Equal(t, tt.want, b.IsActive(), "status %s", tt.status)
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPendingConfirmation}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelledByClient}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusNoShow}).CanBeCancelled())
}

func TestBooking_EndTime(t *testing.T) {
	b := &Booking{StartTime: "10:00", DurationMinutes: 90}
	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:30"), end)

	// Сеанс до полуночи включительно допустим
	late := &Booking{StartTime: "23:00", DurationMinutes: 60}
	end, err = late.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("24:00"), end)

	tooLate := &Booking{StartTime: "23:30", DurationMinutes: 60}
	_, err = tooLate.EndTime()
	assert.Error(t, err)
}

func TestBooking_StartOn(t *testing.T) {
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	b := &Booking{
		BookingDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "14:30",
	}

	start, err := b.StartOn(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 10, 14, 30, 0, 0, loc), start)
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{MethodCard, MethodCash, MethodInsurance, MethodInterac} {
		assert.True(t, ValidPaymentMethod(m))
	}
	assert.False(t, ValidPaymentMethod("bitcoin"))
	assert.False(t, ValidPaymentMethod(""))
}
