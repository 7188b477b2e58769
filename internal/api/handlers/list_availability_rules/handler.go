package list_availability_rules

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
)

const msgInvalidTherapistID = "некорректный идентификатор терапевта"

// RuleView HTTP модель правила доступности
type RuleView struct {
	ID           int64   `json:"id"`
	TherapistID  int64   `json:"therapistId"`
	Type         string  `json:"type"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// RuleListView HTTP модель списка правил
type RuleListView struct {
	Rules []*RuleView `json:"rules"`
	Total int         `json:"total"`
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

// Handle GET /api/v1/therapists/{therapistId}/availability-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := strconv.ParseInt(mux.Vars(r)["therapistId"], 10, 64)
	if err != nil || therapistID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidTherapistID)
		return
	}

	result, err := h.service.GetByTherapist(r.Context(), therapistID)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidTherapistID)
			return
		}
		h.logger.Error("GET /therapists/%d/availability-rules - Failed: %v", therapistID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceList(result))
}

func fromServiceList(list *models.RuleListResponse) *RuleListView {
	rules := make([]*RuleView, 0, len(list.Rules))
	for _, rule := range list.Rules {
		var specificDate *string
		if rule.SpecificDate != nil {
			s := rule.SpecificDate.Format(domain.DateFormat)
			specificDate = &s
		}
		rules = append(rules, &RuleView{
			ID:           rule.ID,
			TherapistID:  rule.TherapistID,
			Type:         rule.Type,
			DayOfWeek:    rule.DayOfWeek,
			SpecificDate: specificDate,
			StartTime:    rule.StartTime,
			EndTime:      rule.EndTime,
			Notes:        rule.Notes,
			CreatedAt:    rule.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    rule.UpdatedAt.Format(time.RFC3339),
		})
	}
	return &RuleListView{Rules: rules, Total: list.Total}
}
