package serviceoption

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/pkg/dbmetrics"
	"github.com/remedyhq/RMT-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога вариантов услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория вариантов услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает вариант услуги по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"duration_minutes",
		"price",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("service_options").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var option domain.ServiceOption
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&option.ID,
		&option.ServiceID,
		&option.Name,
		&option.DurationMinutes,
		&option.Price,
		&option.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service option: %w", ErrScanRow, err)
	}

	option.CreatedAt = createdAt.Time
	option.UpdatedAt = updatedAt.Time

	return &option, nil
}

// GetTherapistIDsForService получает ID терапевтов, оказывающих услугу.
// Используется при подборе слотов без явного выбора терапевта.
func (r *Repository) GetTherapistIDsForService(ctx context.Context, serviceID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("therapist_id").
		From("therapist_services").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("therapist_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTherapistIDsForService - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTherapistIDsForService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	therapistIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetTherapistIDsForService - scan therapist_id: %w", ErrScanRow, err)
		}
		therapistIDs = append(therapistIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTherapistIDsForService - rows error: %w", ErrScanRow, err)
	}

	return therapistIDs, nil
}

// TherapistOffersService проверяет, оказывает ли терапевт указанную услугу
func (r *Repository) TherapistOffersService(ctx context.Context, therapistID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("therapist_services").
		Where(squirrel.Eq{"therapist_id": therapistID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TherapistOffersService - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: TherapistOffersService - scan: %w", ErrScanRow, err)
	}

	return true, nil
}
