package create_booking

import (
	"errors"
	"net/http"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	createBooking "github.com/remedyhq/RMT-SchedulingService/internal/usecase/create_booking"
	"github.com/remedyhq/RMT-SchedulingService/pkg/metrics"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени начала, ожидается HH:MM или 12-часовой формат"
	msgSlotConflict          = "выбранный временной слот недоступен"
	msgNoTherapistAvailable  = "нет свободных терапевтов на выбранное время"
	msgServiceOptionNotFound = "вариант услуги не найден"
	msgServiceOptionInactive = "вариант услуги недоступен"
	msgTherapistNotOffering  = "терапевт не оказывает эту услугу"
	msgInvalidBookingDate    = "некорректная дата бронирования"
	msgDateTooFar            = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook         = "слишком поздно для бронирования этого слота"
	msgPaymentDeclined       = "платёж отклонён"
	msgPaymentFailed         = "не удалось обработать платёж"
	msgInvalidInput          = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
	metrics *metrics.Metrics // nil, если метрики выключены
}

func NewHandler(useCase CreateBookingUseCase, logger Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		metrics: m,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	clientID := middleware.UserID(r.Context())
	isStaff := middleware.IsStaff(r.Context())

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID, isStaff)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
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
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: client=%d, date=%s, start=%s",
				clientID, req.BookingDate, req.StartTime)
			if h.metrics != nil {
				h.metrics.SlotConflictsTotal.Inc()
			}
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrNoTherapistAvailable):
			h.logger.Warn("POST /bookings - No therapist available: client=%d, date=%s, start=%s",
				clientID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgNoTherapistAvailable)

		case errors.Is(err, createBooking.ErrServiceOptionNotFound):
			handlers.RespondNotFound(w, msgServiceOptionNotFound)

		case errors.Is(err, createBooking.ErrServiceOptionInactive):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgServiceOptionInactive)

		case errors.Is(err, createBooking.ErrTherapistNotOffering):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgTherapistNotOffering)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrPaymentDeclined):
			h.logger.Warn("POST /bookings - Payment declined: client=%d", clientID)
			handlers.RespondError(w, http.StatusPaymentRequired, handlers.CodePaymentDeclined, msgPaymentDeclined)

		case errors.Is(err, createBooking.ErrPaymentFailed):
			h.logger.Warn("POST /bookings - Payment failed: client=%d", clientID)
			handlers.RespondError(w, http.StatusPaymentRequired, handlers.CodePaymentFailed, msgPaymentFailed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, ref=%s, client=%d",
		result.ID, result.Reference, clientID)
	if h.metrics != nil {
		h.metrics.BookingsTotal.WithLabelValues(result.Status).Inc()
	}
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
