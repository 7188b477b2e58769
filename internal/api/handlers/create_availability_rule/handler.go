package create_availability_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
)

const (
	msgInvalidTherapistID = "некорректный идентификатор терапевта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRule        = "некорректное правило доступности"
	msgStaffOnly          = "операция доступна только сотрудникам клиники"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/therapists/{therapistId}/availability-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, ok := h.parseTherapistID(w, r)
	if !ok {
		return
	}

	var req RuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /therapists/%d/availability-rules - Invalid request body: %v", therapistID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	input, err := req.ToServiceInput(therapistID)
	if err != nil {
		h.logger.Warn("POST /therapists/%d/availability-rules - Invalid date: %v", therapistID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, therapistID, err)
		return
	}

	h.logger.Info("POST /therapists/%d/availability-rules - Created rule id=%d", therapistID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceRule(result))
}

// HandleBatch POST /api/v1/therapists/{therapistId}/availability-rules/batch
// Пакет создаётся атомарно; при ошибках валидации возвращается 422
// с результатом по каждой позиции
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	therapistID, ok := h.parseTherapistID(w, r)
	if !ok {
		return
	}

	var req BatchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /therapists/%d/availability-rules/batch - Invalid request body: %v", therapistID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	parsed, err := h.parseBatch(therapistID, req.Rules)
	if err != nil {
		h.logger.Warn("POST /therapists/%d/availability-rules/batch - Invalid date: %v", therapistID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.service.CreateBatch(r.Context(), parsed)
	if err != nil {
		h.respondServiceError(w, therapistID, err)
		return
	}

	status := http.StatusCreated
	if result.Failed > 0 {
		status = http.StatusUnprocessableEntity
	}

	h.logger.Info("POST /therapists/%d/availability-rules/batch - Created=%d, failed=%d",
		therapistID, result.Created, result.Failed)
	handlers.RespondJSON(w, status, FromServiceBatch(result))
}

func (h *Handler) parseBatch(therapistID int64, rules []RuleRequest) ([]*models.RuleInput, error) {
	inputs := make([]*models.RuleInput, 0, len(rules))
	for i := range rules {
		input, err := rules[i].ToServiceInput(therapistID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (h *Handler) parseTherapistID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	therapistID, err := strconv.ParseInt(mux.Vars(r)["therapistId"], 10, 64)
	if err != nil || therapistID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidTherapistID)
		return 0, false
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("availability-rules - Non-staff user=%d", middleware.UserID(r.Context()))
		handlers.RespondForbidden(w, msgStaffOnly)
		return 0, false
	}

	return therapistID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, therapistID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrInvalidRule):
		handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeInvalidRule, err.Error())

	case errors.Is(err, availability.ErrInvalidInput):
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRule)

	default:
		h.logger.Error("availability-rules - Service error for therapist=%d: %v", therapistID, err)
		handlers.RespondInternalError(w)
	}
}
