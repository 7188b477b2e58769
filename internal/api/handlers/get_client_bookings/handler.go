package get_client_bookings

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
	msgInvalidClientID = "некорректный идентификатор клиента"
	msgInvalidStatus   = "некорректный статус бронирования"
	msgAccessDenied    = "нет доступа к бронированиям этого клиента"
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

// Handle GET /api/v1/clients/{clientId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil || clientID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidClientID)
		return
	}

	// Клиент видит только свою историю
	userID := middleware.UserID(r.Context())
	if !middleware.IsStaff(r.Context()) && userID != clientID {
		h.logger.Warn("GET /clients/%d/bookings - Access denied for user=%d", clientID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetClientBookings(r.Context(), &models.GetClientBookingsRequest{
		ClientID: clientID,
		Status:   status,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/%d/bookings - Failed to get bookings: %v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
