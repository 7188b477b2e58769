package sessions_needing_attention

import (
	"context"

	"github.com/remedyhq/RMT-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSessionsNeedingAttention(ctx context.Context) (*models.SessionAttentionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
