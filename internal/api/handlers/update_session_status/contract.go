package update_session_status

import (
	"context"

	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings/models"
)

type BookingsService interface {
	UpdateSessionStatus(ctx context.Context, bookingID int64, req *models.UpdateSessionStatusRequest) error
	MarkNoShow(ctx context.Context, bookingID int64, req *models.MarkNoShowRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
