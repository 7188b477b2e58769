package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/remedyhq/RMT-SchedulingService/internal/usecase/get_available_slots"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

const (
	msgInvalidTherapistID    = "некорректный идентификатор терапевта"
	msgInvalidServiceOption  = "некорректный идентификатор варианта услуги"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceOptionNotFound = "вариант услуги не найден"
	msgServiceOptionInactive = "вариант услуги недоступен"
	msgTherapistNotOffering  = "терапевт не оказывает эту услугу"
	msgDateInPast            = "дата не может быть в прошлом"
	msgDateTooFar            = "дата слишком далеко в будущем"
	msgInvalidInput          = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots и GET /api/v1/therapists/{therapistId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceOptionNotFound):
			handlers.RespondNotFound(w, msgServiceOptionNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceOptionInactive):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgServiceOptionInactive)

		case errors.Is(err, getAvailableSlots.ErrTherapistNotOffering):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgTherapistNotOffering)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseRequest разбирает path- и query-параметры запроса
func (h *Handler) parseRequest(r *http.Request) (*getAvailableSlots.Request, error) {
	query := r.URL.Query()

	var therapistID *int64
	if raw, ok := mux.Vars(r)["therapistId"]; ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New(msgInvalidTherapistID)
		}
		therapistID = &id
	}

	serviceOptionID, err := strconv.ParseInt(query.Get("serviceOptionId"), 10, 64)
	if err != nil || serviceOptionID <= 0 {
		return nil, errors.New(msgInvalidServiceOption)
	}

	// Дата нормализуется один раз на границе сервиса
	civ, err := types.Normalize(query.Get("date"), time.UTC)
	if err != nil {
		return nil, errors.New(msgInvalidDate)
	}
	date, err := civ.Date(time.UTC)
	if err != nil {
		return nil, errors.New(msgInvalidDate)
	}

	return &getAvailableSlots.Request{
		TherapistID:     therapistID,
		ServiceOptionID: serviceOptionID,
		Date:            date,
	}, nil
}
