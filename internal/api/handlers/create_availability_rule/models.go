package create_availability_rule

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// RuleRequest HTTP модель правила доступности
type RuleRequest struct {
	Type         string  `json:"type"` // working_hours / time_off
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"` // "2026-09-15"
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Notes        *string `json:"notes,omitempty"`
}

// BatchRequest HTTP модель пакета правил
type BatchRequest struct {
	Rules []RuleRequest `json:"rules"`
}

// RuleView HTTP модель созданного правила
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
}

// BatchResultView результат одной позиции пакета
type BatchResultView struct {
	Index int       `json:"index"`
	Rule  *RuleView `json:"rule,omitempty"`
	Error string    `json:"error,omitempty"`
}

// BatchView HTTP модель результата пакетного создания
type BatchView struct {
	Results []*BatchResultView `json:"results"`
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
}

// ToServiceInput конвертирует HTTP запрос в модель сервиса
func (r *RuleRequest) ToServiceInput(therapistID int64) (*models.RuleInput, error) {
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
		TherapistID:  therapistID,
		Type:         r.Type,
		DayOfWeek:    r.DayOfWeek,
		SpecificDate: specificDate,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Notes:        r.Notes,
	}, nil
}

// FromServiceRule конвертирует модель сервиса в HTTP response
func FromServiceRule(rule *models.RuleResponse) *RuleView {
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
		CreatedAt:    rule.CreatedAt.Format(time.RFC3339),
	}
}

// FromServiceBatch конвертирует результат пакетного создания
func FromServiceBatch(batch *models.BatchResponse) *BatchView {
	results := make([]*BatchResultView, 0, len(batch.Results))
	for _, r := range batch.Results {
		view := &BatchResultView{Index: r.Index, Error: r.Error}
		if r.Rule != nil {
			view.Rule = FromServiceRule(r.Rule)
		}
		results = append(results, view)
	}
	return &BatchView{Results: results, Created: batch.Created, Failed: batch.Failed}
}
