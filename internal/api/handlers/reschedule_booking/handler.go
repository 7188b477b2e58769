package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	rescheduleBooking "github.com/remedyhq/RMT-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM или 12-часовой формат"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotReschedule   = "бронирование не может быть перенесено"
	msgSlotConflict       = "новый временной слот недоступен"
	msgInvalidBookingDate = "некорректная новая дата"
	msgDateTooFar         = "новая дата слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для переноса на этот слот"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d/reschedule - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/%d/reschedule - Failed to parse request: %v", bookingID, err)
		if errors.Is(err, types.ErrInvalidTimeFormat) {
			handlers.RespondBadRequest(w, handlers.CodeInvalidTimeFormat, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PUT /bookings/%d/reschedule - Cannot reschedule", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeInvalidTransition, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			h.logger.Warn("PUT /bookings/%d/reschedule - Slot conflict at %s %s",
				bookingID, req.NewDate, req.NewStart)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingDate)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgDateTooFar)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bookings/%d/reschedule - Failed to reschedule: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%d/reschedule - Moved to %s %s",
		bookingID, result.BookingDate, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
