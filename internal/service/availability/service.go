package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	availabilityRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/availability"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
)

// Service сервис для управления правилами доступности терапевтов
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса правил доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Create создает одно правило доступности
func (s *Service) Create(ctx context.Context, input *models.RuleInput) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating rule for therapist=%d, type=%s", input.TherapistID, input.Type)

	rule, err := s.buildRule(input)
	if err != nil {
		s.logger.Warn("Create: invalid rule for therapist=%d: %v", input.TherapistID, err)
		return nil, err
	}

	created, err := s.availabilityRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error for therapist=%d: %v", input.TherapistID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: created rule id=%d for therapist=%d", created.ID, created.TherapistID)
	return models.FromDomainRule(created), nil
}

// CreateBatch создает набор правил атомарно: при любой ошибке валидации
// ни одно правило не создаётся, а результат содержит ошибку по каждой
// позиции. Типичный случай - загрузка недельного расписания терапевта.
func (s *Service) CreateBatch(ctx context.Context, inputs []*models.RuleInput) (*models.BatchResponse, error) {
	s.logger.Info("CreateBatch: creating %d rules", len(inputs))

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}

	// Сначала валидируем весь пакет
	rules := make([]*domain.AvailabilityRule, len(inputs))
	results := make([]*models.BatchResult, len(inputs))
	failed := 0

	for i, input := range inputs {
		results[i] = &models.BatchResult{Index: i}

		rule, err := s.buildRule(input)
		if err != nil {
			results[i].Error = err.Error()
			failed++
			continue
		}
		rules[i] = rule
	}

	if failed > 0 {
		s.logger.Warn("CreateBatch: %d of %d rules failed validation, nothing created", failed, len(inputs))
		return &models.BatchResponse{Results: results, Created: 0, Failed: failed}, nil
	}

	// Все правила валидны - создаём в одной транзакции
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for i, rule := range rules {
			created, err := s.availabilityRepo.Create(txCtx, rule)
			if err != nil {
				return fmt.Errorf("rule %d: %w", i, err)
			}
			results[i].Rule = models.FromDomainRule(created)
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("CreateBatch: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: CreateBatch - transaction failed: %w", ErrInternal, txErr)
	}

	s.logger.Info("CreateBatch: created %d rules", len(inputs))
	return &models.BatchResponse{Results: results, Created: len(inputs), Failed: 0}, nil
}

// GetByTherapist возвращает все правила доступности терапевта
func (s *Service) GetByTherapist(ctx context.Context, therapistID int64) (*models.RuleListResponse, error) {
	s.logger.Info("GetByTherapist: fetching rules for therapist=%d", therapistID)

	if therapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	rules, err := s.availabilityRepo.GetByTherapistID(ctx, therapistID)
	if err != nil {
		s.logger.Error("GetByTherapist: repository error for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: GetByTherapist - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByTherapist: fetched %d rules for therapist=%d", len(rules), therapistID)
	return models.FromDomainRuleList(rules), nil
}

// Update обновляет существующее правило доступности
func (s *Service) Update(ctx context.Context, id int64, input *models.RuleInput) (*models.RuleResponse, error) {
	s.logger.Info("Update: updating rule id=%d", id)

	existing, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	rule, err := s.buildRule(input)
	if err != nil {
		s.logger.Warn("Update: invalid rule id=%d: %v", id, err)
		return nil, err
	}
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now().UTC()

	if err := s.availabilityRepo.Update(ctx, rule); err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: updated rule id=%d", id)
	return models.FromDomainRule(rule), nil
}

// Delete удаляет правило доступности.
// Существующие бронирования не затрагиваются: они остаются в силе,
// даже если окно рабочего времени исчезло.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting rule id=%d", id)

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted rule id=%d", id)
	return nil
}

// Вспомогательные методы

// buildRule валидирует входные данные и собирает доменное правило
func (s *Service) buildRule(input *models.RuleInput) (*domain.AvailabilityRule, error) {
	if input.TherapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	rule, err := models.ToDomainRule(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	if !domain.ValidRuleType(rule.Type) {
		return nil, fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, input.Type)
	}

	// Ровно одно из dayOfWeek и specificDate
	if (rule.DayOfWeek == nil) == (rule.SpecificDate == nil) {
		return nil, fmt.Errorf("%w: exactly one of dayOfWeek and specificDate must be set", ErrInvalidRule)
	}

	if rule.DayOfWeek != nil && (*rule.DayOfWeek < domain.MinDayOfWeek || *rule.DayOfWeek > domain.MaxDayOfWeek) {
		return nil, fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidRule, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	if !rule.Interval().IsValid() {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidRule)
	}

	if rule.Notes != nil && len(*rule.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes cannot exceed %d characters", ErrInvalidRule, domain.MaxNotesLength)
	}

	return rule, nil
}
