package list_availability_rules

import (
	"context"

	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetByTherapist(ctx context.Context, therapistID int64) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
