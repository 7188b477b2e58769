package update_session_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidStatus      = "неизвестный статус сессии"
	msgInvalidTransition  = "недопустимый переход статуса сессии"
	msgNoShowTooEarly     = "нельзя отметить неявку до начала сеанса"
	msgStaffOnly          = "операция доступна только сотрудникам клиники"
)

// UpdateSessionStatusRequest HTTP request model
type UpdateSessionStatusRequest struct {
	Status string `json:"status"`
	// Reason причина неявки, используется при status=no_show
	Reason string `json:"reason,omitempty"`
}

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

// Handle PUT /api/v1/bookings/{bookingId}/session-status
// Переход в no_show идёт отдельным путём: он затрагивает и статус
// бронирования, и поля аудита неявки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("PUT /bookings/%d/session-status - Non-staff user=%d",
			bookingID, middleware.UserID(r.Context()))
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	var req UpdateSessionStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d/session-status - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	userID := middleware.UserID(r.Context())

	if domain.SessionStatus(req.Status) == domain.SessionNoShow {
		err = h.service.MarkNoShow(r.Context(), bookingID, &models.MarkNoShowRequest{
			MarkedBy: userID,
			Reason:   req.Reason,
		})
	} else {
		err = h.service.UpdateSessionStatus(r.Context(), bookingID, &models.UpdateSessionStatusRequest{
			UserID: userID,
			Status: req.Status,
		})
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/%d/session-status - Invalid transition to %s", bookingID, req.Status)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeInvalidTransition, msgInvalidTransition)

		case errors.Is(err, bookings.ErrNoShowTooEarly):
			h.logger.Warn("PUT /bookings/%d/session-status - No-show before session start", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeInvalidTransition, msgNoShowTooEarly)

		default:
			h.logger.Error("PUT /bookings/%d/session-status - Failed to update: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%d/session-status - Updated to %s by user=%d", bookingID, req.Status, userID)
	w.WriteHeader(http.StatusNoContent)
}
