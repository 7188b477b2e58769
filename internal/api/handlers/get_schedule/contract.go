package get_schedule

import (
	"context"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetDaySchedule(ctx context.Context, therapistID int64, date time.Time) (*models.DaySchedule, error)
	GetWeekSchedule(ctx context.Context, therapistID int64, weekStart time.Time) (*models.WeekSchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
