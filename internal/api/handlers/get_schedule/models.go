package get_schedule

import (
	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/schedule/models"
)

// TimeRangeView HTTP модель интервала времени
type TimeRangeView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduledBookingView HTTP модель записи расписания
type ScheduledBookingView struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	ClientID      int64   `json:"clientId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	ServiceName   string  `json:"serviceName"`
	Status        string  `json:"status"`
	SessionStatus string  `json:"sessionStatus"`
	Notes         *string `json:"notes,omitempty"`
}

// DayScheduleView HTTP модель расписания на день
type DayScheduleView struct {
	TherapistID    int64                  `json:"therapistId"`
	Date           string                 `json:"date"`
	WorkingWindows []TimeRangeView        `json:"workingWindows"`
	TimeOff        []TimeRangeView        `json:"timeOff"`
	Bookings       []ScheduledBookingView `json:"bookings"`
	OpenIntervals  []TimeRangeView        `json:"openIntervals"`
}

// WeekScheduleView HTTP модель расписания на неделю
type WeekScheduleView struct {
	TherapistID int64              `json:"therapistId"`
	WeekStart   string             `json:"weekStart"`
	Days        []*DayScheduleView `json:"days"`
}

// FromDaySchedule конвертирует модель сервиса в HTTP response
func FromDaySchedule(day *models.DaySchedule) *DayScheduleView {
	bookings := make([]ScheduledBookingView, 0, len(day.Bookings))
	for _, b := range day.Bookings {
		bookings = append(bookings, ScheduledBookingView{
			ID:            b.ID,
			Reference:     b.Reference,
			ClientID:      b.ClientID,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			ServiceName:   b.ServiceName,
			Status:        b.Status,
			SessionStatus: b.SessionStatus,
			Notes:         b.Notes,
		})
	}

	return &DayScheduleView{
		TherapistID:    day.TherapistID,
		Date:           day.Date.Format(domain.DateFormat),
		WorkingWindows: fromTimeRanges(day.WorkingWindows),
		TimeOff:        fromTimeRanges(day.TimeOff),
		Bookings:       bookings,
		OpenIntervals:  fromTimeRanges(day.OpenIntervals),
	}
}

// FromWeekSchedule конвертирует недельное расписание в HTTP response
func FromWeekSchedule(week *models.WeekSchedule) *WeekScheduleView {
	days := make([]*DayScheduleView, 0, len(week.Days))
	for _, day := range week.Days {
		days = append(days, FromDaySchedule(day))
	}
	return &WeekScheduleView{
		TherapistID: week.TherapistID,
		WeekStart:   week.WeekStart.Format(domain.DateFormat),
		Days:        days,
	}
}

func fromTimeRanges(ranges []models.TimeRange) []TimeRangeView {
	result := make([]TimeRangeView, 0, len(ranges))
	for _, r := range ranges {
		result = append(result, TimeRangeView{StartTime: r.StartTime, EndTime: r.EndTime})
	}
	return result
}
