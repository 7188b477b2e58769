package models

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
)

// TimeRange интервал времени в каноническом формате HH:MM
type TimeRange struct {
	StartTime string
	EndTime   string
}

// ScheduledBooking запись расписания терапевта
type ScheduledBooking struct {
	ID            int64
	Reference     string
	ClientID      int64
	StartTime     string
	EndTime       string
	ServiceName   string
	Status        string
	SessionStatus string
	Notes         *string
}

// DaySchedule расписание терапевта на один день: действующие рабочие окна,
// вычеты time-off, бронирования и оставшиеся свободные интервалы
type DaySchedule struct {
	TherapistID    int64
	Date           time.Time
	WorkingWindows []TimeRange
	TimeOff        []TimeRange
	Bookings       []ScheduledBooking
	OpenIntervals  []TimeRange
}

// WeekSchedule расписание терапевта на неделю
type WeekSchedule struct {
	TherapistID int64
	WeekStart   time.Time
	Days        []*DaySchedule
}

// SessionAttentionItem сессия, требующая внимания персонала
type SessionAttentionItem struct {
	BookingID     int64
	Reference     string
	TherapistID   int64
	ClientID      int64
	BookingDate   time.Time
	StartTime     string
	ServiceName   string
	SessionStatus string
	Reason        string // overdue / overdue_in_progress
}

// SessionAttentionResponse список сессий, требующих внимания
type SessionAttentionResponse struct {
	Sessions []*SessionAttentionItem
	Total    int
}

// FromIntervals конвертирует domain-интервалы в TimeRange
func FromIntervals(intervals []domain.Interval) []TimeRange {
	result := make([]TimeRange, 0, len(intervals))
	for _, i := range intervals {
		result = append(result, TimeRange{
			StartTime: i.Start.String(),
			EndTime:   i.End.String(),
		})
	}
	return result
}

// FromDomainBookingSchedule конвертирует бронирование в запись расписания
func FromDomainBookingSchedule(b *domain.Booking) ScheduledBooking {
	endTime := ""
	if end, err := b.EndTime(); err == nil {
		endTime = end.String()
	}
	return ScheduledBooking{
		ID:            b.ID,
		Reference:     b.Reference,
		ClientID:      b.ClientID,
		StartTime:     b.StartTime.String(),
		EndTime:       endTime,
		ServiceName:   b.ServiceName,
		Status:        string(b.Status),
		SessionStatus: string(b.SessionStatus),
		Notes:         b.Notes,
	}
}
