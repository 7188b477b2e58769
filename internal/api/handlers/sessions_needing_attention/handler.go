package sessions_needing_attention

import (
	"net/http"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/api/middleware"
	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/schedule/models"
)

const msgStaffOnly = "операция доступна только сотрудникам клиники"

// SessionView HTTP модель сессии, требующей внимания
type SessionView struct {
	BookingID     int64  `json:"bookingId"`
	Reference     string `json:"reference"`
	TherapistID   int64  `json:"therapistId"`
	ClientID      int64  `json:"clientId"`
	BookingDate   string `json:"bookingDate"`
	StartTime     string `json:"startTime"`
	ServiceName   string `json:"serviceName"`
	SessionStatus string `json:"sessionStatus"`
	Reason        string `json:"reason"`
}

// SessionListView HTTP модель списка сессий
type SessionListView struct {
	Sessions []*SessionView `json:"sessions"`
	Total    int            `json:"total"`
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/needing-attention
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /sessions/needing-attention - Non-staff user=%d", middleware.UserID(r.Context()))
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	result, err := h.service.GetSessionsNeedingAttention(r.Context())
	if err != nil {
		h.logger.Error("GET /sessions/needing-attention - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(result))
}

func fromServiceResponse(resp *models.SessionAttentionResponse) *SessionListView {
	sessions := make([]*SessionView, 0, len(resp.Sessions))
	for _, s := range resp.Sessions {
		sessions = append(sessions, &SessionView{
			BookingID:     s.BookingID,
			Reference:     s.Reference,
			TherapistID:   s.TherapistID,
			ClientID:      s.ClientID,
			BookingDate:   s.BookingDate.Format(domain.DateFormat),
			StartTime:     s.StartTime,
			ServiceName:   s.ServiceName,
			SessionStatus: s.SessionStatus,
			Reason:        s.Reason,
		})
	}
	return &SessionListView{Sessions: sessions, Total: resp.Total}
}
