package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/schedule"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

const (
	msgInvalidTherapistID = "некорректный идентификатор терапевта"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPeriod      = "укажите параметр date либо weekStart"
)

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

// Handle GET /api/v1/therapists/{therapistId}/schedule?date=|weekStart=
// Параметр date возвращает расписание на день, weekStart - на 7 дней
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := strconv.ParseInt(mux.Vars(r)["therapistId"], 10, 64)
	if err != nil || therapistID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidTherapistID)
		return
	}

	query := r.URL.Query()

	switch {
	case query.Get("date") != "":
		date, err := parseDate(query.Get("date"))
		if err != nil {
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
			return
		}
		day, err := h.service.GetDaySchedule(r.Context(), therapistID, date)
		if err != nil {
			h.respondServiceError(w, therapistID, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, FromDaySchedule(day))

	case query.Get("weekStart") != "":
		weekStart, err := parseDate(query.Get("weekStart"))
		if err != nil {
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
			return
		}
		week, err := h.service.GetWeekSchedule(r.Context(), therapistID, weekStart)
		if err != nil {
			h.respondServiceError(w, therapistID, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, FromWeekSchedule(week))

	default:
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgMissingPeriod)
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, therapistID int64, err error) {
	if errors.Is(err, schedule.ErrInvalidInput) {
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
		return
	}
	h.logger.Error("GET /therapists/%d/schedule - Failed to get schedule: %v", therapistID, err)
	handlers.RespondInternalError(w)
}

// parseDate нормализует дату запроса один раз на границе сервиса
func parseDate(raw string) (time.Time, error) {
	civ, err := types.Normalize(raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return civ.Date(time.UTC)
}
