package delete_availability_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability"
)

const (
	msgInvalidRuleID = "некорректный идентификатор правила"
	msgRuleNotFound  = "правило доступности не найдено"
	msgStaffOnly     = "операция доступна только сотрудникам клиники"
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

// Handle DELETE /api/v1/availability-rules/{ruleId}
// Существующие бронирования удалением правила не затрагиваются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil || ruleID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRuleID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("DELETE /availability-rules/%d - Non-staff user=%d", ruleID, middleware.UserID(r.Context()))
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	if err := h.service.Delete(r.Context(), ruleID); err != nil {
		if errors.Is(err, availability.ErrRuleNotFound) {
			handlers.RespondNotFound(w, msgRuleNotFound)
			return
		}
		h.logger.Error("DELETE /availability-rules/%d - Failed to delete: %v", ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /availability-rules/%d - Deleted", ruleID)
	w.WriteHeader(http.StatusNoContent)
}
