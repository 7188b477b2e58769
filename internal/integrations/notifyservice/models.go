package notifyservice

// BookingEvent уведомление о событии бронирования
type BookingEvent struct {
	Event            string  `json:"event"` // "booking_created", "booking_confirmed", "booking_reminder"
	BookingReference string  `json:"bookingReference"`
	ClientID         int64   `json:"clientId"`
	TherapistID      int64   `json:"therapistId"`
	ServiceName      string  `json:"serviceName"`
	BookingDate      string  `json:"bookingDate"` // YYYY-MM-DD
	StartTime        string  `json:"startTime"`   // HH:MM
	Notes            *string `json:"notes,omitempty"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
