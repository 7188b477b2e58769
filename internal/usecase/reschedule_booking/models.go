package reschedule_booking

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64            // ID переносимого бронирования
	NewDate   time.Time        // Новая дата
	NewStart  types.TimeString // Новое время начала
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID              int64
	Reference       string
	TherapistID     int64
	ClientID        int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	SessionStatus   string
}

// Config параметры проверки доступности при переносе
type Config struct {
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int
	Location                *time.Location
}
