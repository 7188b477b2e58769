package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings/models"
)

const (
	msgBookingNotFound = "бронирование не найдено"
	msgAccessDenied    = "нет доступа к этому бронированию"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Идентификатором может быть числовой ID или UUID-референс
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["bookingId"]
	userID := middleware.UserID(r.Context())
	isStaff := middleware.IsStaff(r.Context())

	var result *models.BookingResponse
	var err error

	if id, parseErr := strconv.ParseInt(rawID, 10, 64); parseErr == nil {
		result, err = h.service.GetByID(r.Context(), id, userID, isStaff)
	} else {
		result, err = h.service.GetByReference(r.Context(), rawID, userID, isStaff)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/%s - Booking not found", rawID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/%s - Access denied for user=%d", rawID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /bookings/%s - Failed to get booking: %v", rawID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
