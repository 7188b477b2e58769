package availability

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/pkg/ptr"
)

// fakeExecutor перехватывает SQL, не обращаясь к базе
type fakeExecutor struct {
	lastQuery string
	lastArgs  []interface{}
	rows      int64
}

type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.lastQuery = query
	f.lastArgs = args
	return fakeResult{rows: f.rows}, nil
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	panic("unexpected QueryContext")
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	panic("unexpected QueryRowContext")
}

func TestUpdate_PersistsRuleType(t *testing.T) {
	// Смена working_hours <-> time_off должна доходить до базы,
	// иначе вычисление слотов продолжит использовать старый тип
	executor := &fakeExecutor{rows: 1}
	repo := NewRepository(executor)

	rule := &domain.AvailabilityRule{
		ID:          42,
		TherapistID: 7,
		Type:        domain.RuleTimeOff,
		DayOfWeek:   ptr.Ptr(1),
		StartTime:   "12:00",
		EndTime:     "13:00",
		UpdatedAt:   time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Update(context.Background(), rule))

	assert.Contains(t, executor.lastQuery, "rule_type")
	assert.Contains(t, executor.lastQuery, "updated_at")
	assert.Contains(t, executor.lastArgs, domain.RuleTimeOff)
	assert.True(t, strings.HasPrefix(executor.lastQuery, "UPDATE availability_rules"))
}

func TestUpdate_NoRowsIsNotFound(t *testing.T) {
	executor := &fakeExecutor{rows: 0}
	repo := NewRepository(executor)

	err := repo.Update(context.Background(), &domain.AvailabilityRule{
		ID:        99,
		Type:      domain.RuleWorkingHours,
		DayOfWeek: ptr.Ptr(2),
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	assert.ErrorIs(t, err, ErrRuleNotFound)
}
