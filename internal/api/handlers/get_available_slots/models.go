package get_available_slots

import (
	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	getAvailableSlots "github.com/remedyhq/RMT-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Remaining       int    `json:"remaining"`
	Total           int    `json:"total"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	TherapistID     *int64         `json:"therapistId,omitempty"`
	ServiceOptionID int64          `json:"serviceOptionId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Remaining:       s.Remaining,
			Total:           s.Total,
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		TherapistID:     resp.TherapistID,
		ServiceOptionID: resp.ServiceOptionID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
