package update_availability_rule

import (
	"context"

	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Update(ctx context.Context, id int64, input *models.RuleInput) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
