package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	availabilityRepo "github.com/remedyhq/RMT-SchedulingService/internal/infra/storage/availability"
	"github.com/remedyhq/RMT-SchedulingService/internal/service/availability/models"
)

type fakeRepo struct {
	rules  map[int64]*domain.AvailabilityRule
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rules: make(map[int64]*domain.AvailabilityRule)}
}

func (f *fakeRepo) Create(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	f.nextID++
	rule.ID = f.nextID
	f.rules[rule.ID] = rule
	return rule, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityRule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, availabilityRepo.ErrRuleNotFound
	}
	return rule, nil
}

func (f *fakeRepo) GetByTherapistID(_ context.Context, therapistID int64) ([]*domain.AvailabilityRule, error) {
	var out []*domain.AvailabilityRule
	for _, rule := range f.rules {
		if rule.TherapistID == therapistID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, rule *domain.AvailabilityRule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return availabilityRepo.ErrRuleNotFound
	}
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rules[id]; !ok {
		return availabilityRepo.ErrRuleNotFound
	}
	delete(f.rules, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeTxManager{}, nopLogger{}), repo
}

func intPtr(v int) *int { return &v }

func recurringInput(therapistID int64, dow int, start, end string) *models.RuleInput {
	return &models.RuleInput{
		TherapistID: therapistID,
		Type:        string(domain.RuleWorkingHours),
		DayOfWeek:   intPtr(dow),
		StartTime:   start,
		EndTime:     end,
	}
}

func TestCreate(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), recurringInput(7, 1, "09:00", "17:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.TherapistID)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "17:00", resp.EndTime)
	assert.Len(t, repo.rules, 1)
}

// Время в 12-часовом формате нормализуется при создании
func TestCreate_NormalizesTimeFormat(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), recurringInput(7, 1, "9:00 AM", "5:00 PM"))
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "17:00", resp.EndTime)
}

func TestCreate_Validation(t *testing.T) {
	date := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   *models.RuleInput
		wantErr error
	}{
		{
			name:    "therapist id required",
			input:   recurringInput(0, 1, "09:00", "17:00"),
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown rule type",
			input: &models.RuleInput{
				TherapistID: 7, Type: "vacation",
				DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "17:00",
			},
			wantErr: ErrInvalidRule,
		},
		{
			name: "both dayOfWeek and specificDate",
			input: &models.RuleInput{
				TherapistID: 7, Type: string(domain.RuleWorkingHours),
				DayOfWeek: intPtr(1), SpecificDate: &date,
				StartTime: "09:00", EndTime: "17:00",
			},
			wantErr: ErrInvalidRule,
		},
		{
			name: "neither dayOfWeek nor specificDate",
			input: &models.RuleInput{
				TherapistID: 7, Type: string(domain.RuleWorkingHours),
				StartTime: "09:00", EndTime: "17:00",
			},
			wantErr: ErrInvalidRule,
		},
		{
			name:    "dayOfWeek out of range",
			input:   recurringInput(7, 7, "09:00", "17:00"),
			wantErr: ErrInvalidRule,
		},
		{
			name:    "end before start",
			input:   recurringInput(7, 1, "17:00", "09:00"),
			wantErr: ErrInvalidRule,
		},
		{
			name:    "end equals start",
			input:   recurringInput(7, 1, "09:00", "09:00"),
			wantErr: ErrInvalidRule,
		},
		{
			name:    "unparseable time",
			input:   recurringInput(7, 1, "nine", "17:00"),
			wantErr: ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.rules)
		})
	}
}

func TestCreateBatch_AllValid(t *testing.T) {
	svc, repo := newTestService()

	inputs := []*models.RuleInput{
		recurringInput(7, 1, "09:00", "17:00"),
		recurringInput(7, 2, "09:00", "17:00"),
		recurringInput(7, 3, "10:00", "18:00"),
	}

	resp, err := svc.CreateBatch(context.Background(), inputs)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Created)
	assert.Equal(t, 0, resp.Failed)
	assert.Len(t, repo.rules, 3)

	for i, result := range resp.Results {
		assert.Equal(t, i, result.Index)
		assert.Empty(t, result.Error)
		require.NotNil(t, result.Rule)
	}
}

// Пакет атомарен: одна невалидная позиция - не создаётся ничего
func TestCreateBatch_OneInvalidNothingCreated(t *testing.T) {
	svc, repo := newTestService()

	inputs := []*models.RuleInput{
		recurringInput(7, 1, "09:00", "17:00"),
		recurringInput(7, 2, "17:00", "09:00"), // конец раньше начала
		recurringInput(7, 3, "10:00", "18:00"),
	}

	resp, err := svc.CreateBatch(context.Background(), inputs)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	assert.Empty(t, repo.rules)

	assert.Empty(t, resp.Results[0].Error)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Empty(t, resp.Results[2].Error)
}

func TestCreateBatch_EmptyRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateBatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByTherapist(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), recurringInput(7, 1, "09:00", "17:00"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), recurringInput(8, 1, "09:00", "17:00"))
	require.NoError(t, err)

	resp, err := svc.GetByTherapist(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, resp.Rules, 1)
}

func TestUpdate(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), recurringInput(7, 1, "09:00", "17:00"))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, recurringInput(7, 1, "10:00", "16:00"))
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "10:00", updated.StartTime)
	assert.Equal(t, "10:00", repo.rules[created.ID].StartTime.String())
}

func TestUpdate_ChangesRuleType(t *testing.T) {
	// Смена типа правила должна сохраняться, а ответ — нести свежий UpdatedAt
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), recurringInput(7, 1, "12:00", "13:00"))
	require.NoError(t, err)

	input := recurringInput(7, 1, "12:00", "13:00")
	input.Type = string(domain.RuleTimeOff)

	updated, err := svc.Update(context.Background(), created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, string(domain.RuleTimeOff), updated.Type)
	assert.Equal(t, domain.RuleTimeOff, repo.rules[created.ID].Type)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 404, recurringInput(7, 1, "10:00", "16:00"))
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), recurringInput(7, 1, "09:00", "17:00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.rules)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrRuleNotFound)
}
