package update_availability_rule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

const (
	msgInvalidRuleID      = "некорректный идентификатор правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRuleNotFound       = "правило доступности не найдено"
	msgStaffOnly          = "операция доступна только сотрудникам клиники"
)

// UpdateRuleRequest HTTP request model
type UpdateRuleRequest struct {
	TherapistID  int64   `json:"therapistId"`
	Type         string  `json:"type"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Notes        *string `json:"notes,omitempty"`
}

// RuleView HTTP модель обновлённого правила
type RuleView struct {
	ID           int64   `json:"id"`
	TherapistID  int64   `json:"therapistId"`
	Type         string  `json:"type"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Notes        *string `json:"notes,omitempty"`
	UpdatedAt    string  `json:"updatedAt"`
}

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

// Handle PUT /api/v1/availability-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil || ruleID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRuleID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("PUT /availability-rules/%d - Non-staff user=%d", ruleID, middleware.UserID(r.Context()))
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	var req UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability-rules/%d - Invalid request body: %v", ruleID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.service.Update(r.Context(), ruleID, input)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrRuleNotFound):
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, availability.ErrInvalidRule):
			handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeInvalidRule, err.Error())

		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /availability-rules/%d - Failed to update: %v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability-rules/%d - Updated", ruleID)
	handlers.RespondJSON(w, http.StatusOK, fromServiceRule(result))
}

func (r *UpdateRuleRequest) toServiceInput() (*models.RuleInput, error) {
	var specificDate *time.Time
	if r.SpecificDate != nil {
		// Дата нормализуется один раз на границе сервиса
		civ, err := types.Normalize(*r.SpecificDate, time.UTC)
		if err != nil {
			return nil, err
		}
		parsed, err := civ.Date(time.UTC)
		if err != nil {
			return nil, err
		}
		specificDate = &parsed
	}

	return &models.RuleInput{
		TherapistID:  r.TherapistID,
		Type:         r.Type,
		DayOfWeek:    r.DayOfWeek,
		SpecificDate: specificDate,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Notes:        r.Notes,
	}, nil
}

func fromServiceRule(rule *models.RuleResponse) *RuleView {
	var specificDate *string
	if rule.SpecificDate != nil {
		s := rule.SpecificDate.Format(domain.DateFormat)
		specificDate = &s
	}

	return &RuleView{
		ID:           rule.ID,
		TherapistID:  rule.TherapistID,
		Type:         rule.Type,
		DayOfWeek:    rule.DayOfWeek,
		SpecificDate: specificDate,
		StartTime:    rule.StartTime,
		EndTime:      rule.EndTime,
		Notes:        rule.Notes,
		UpdatedAt:    rule.UpdatedAt.Format(time.RFC3339),
	}
}
