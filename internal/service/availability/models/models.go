package models

import (
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// RuleInput входные данные правила доступности.
// Ровно одно из DayOfWeek и SpecificDate должно быть задано.
type RuleInput struct {
	TherapistID  int64
	Type         string
	DayOfWeek    *int
	SpecificDate *time.Time
	StartTime    string // HH:MM либо 12-часовой формат ("9:00 AM")
	EndTime      string
	Notes        *string
}

// RuleResponse модель правила доступности для внешних слоёв
type RuleResponse struct {
	ID           int64
	TherapistID  int64
	Type         string
	DayOfWeek    *int
	SpecificDate *time.Time
	StartTime    string
	EndTime      string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RuleListResponse список правил доступности
type RuleListResponse struct {
	Rules []*RuleResponse
	Total int
}

// BatchResult результат создания одного правила из пакета
type BatchResult struct {
	Index int           // Позиция правила во входном пакете
	Rule  *RuleResponse // Заполнено при успехе
	Error string        // Заполнено при ошибке валидации
}

// BatchResponse результат пакетного создания правил
type BatchResponse struct {
	Results []*BatchResult
	Created int
	Failed  int
}

// ToDomainRule конвертирует RuleInput в domain.AvailabilityRule.
// Времена нормализуются в канонический формат HH:MM.
func ToDomainRule(in *RuleInput) (*domain.AvailabilityRule, error) {
	start, err := types.NewTimeStringFromString(in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(in.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.AvailabilityRule{
		TherapistID:  in.TherapistID,
		Type:         domain.RuleType(in.Type),
		DayOfWeek:    in.DayOfWeek,
		SpecificDate: in.SpecificDate,
		StartTime:    start,
		EndTime:      end,
		Notes:        in.Notes,
	}, nil
}

// FromDomainRule конвертирует domain.AvailabilityRule в RuleResponse
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	return &RuleResponse{
		ID:           r.ID,
		TherapistID:  r.TherapistID,
		Type:         string(r.Type),
		DayOfWeek:    r.DayOfWeek,
		SpecificDate: r.SpecificDate,
		StartTime:    r.StartTime.String(),
		EndTime:      r.EndTime.String(),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список правил
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	result := make([]*RuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, FromDomainRule(r))
	}
	return &RuleListResponse{
		Rules: result,
		Total: len(result),
	}
}
