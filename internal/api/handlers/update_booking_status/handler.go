package update_booking_status

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
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidStatus      = "неизвестный статус бронирования"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgStaffOnly          = "операция доступна только сотрудникам клиники"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
	// PaymentRef заполняется при отметке оплаты на месте
	MarkPaid   bool    `json:"markPaid,omitempty"`
	PaymentRef *string `json:"paymentRef,omitempty"`
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

// Handle PUT /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("PUT /bookings/%d/status - Non-staff user=%d", bookingID, middleware.UserID(r.Context()))
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d/status - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	userID := middleware.UserID(r.Context())

	err = h.service.UpdateStatus(r.Context(), bookingID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/%d/status - Invalid transition to %s", bookingID, req.Status)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeInvalidTransition, msgInvalidTransition)

		default:
			h.logger.Error("PUT /bookings/%d/status - Failed to update: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Оплата на месте отмечается вместе со сменой статуса
	if req.MarkPaid {
		if err := h.service.MarkPaid(r.Context(), bookingID, req.PaymentRef); err != nil {
			h.logger.Error("PUT /bookings/%d/status - Failed to mark paid: %v", bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
	}

	h.logger.Info("PUT /bookings/%d/status - Updated to %s by user=%d", bookingID, req.Status, userID)
	w.WriteHeader(http.StatusNoContent)
}
