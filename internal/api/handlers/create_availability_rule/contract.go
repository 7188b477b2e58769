package create_availability_rule

import (
	"context"

	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Create(ctx context.Context, input *models.RuleInput) (*models.RuleResponse, error)
	CreateBatch(ctx context.Context, inputs []*models.RuleInput) (*models.BatchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
