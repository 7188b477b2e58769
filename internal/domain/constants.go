package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes  = 0 // 0 = шаг равен длительности услуги
	DefaultMinBookingNoticeMinutes = 60
	DefaultAdvanceBookingDays      = 0 // 0 = без ограничений
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 15
	MaxServiceDurationMinutes   = 240
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxNoShowReasonLength       = 500
	MinDayOfWeek                = 0
	MaxDayOfWeek                = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы бронирований, которые освобождают слот.
// No-show сюда не входит: интервал остаётся занятым для истории.
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByStaff,
}

// ActiveStatuses статусы бронирований, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusPendingConfirmation,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
