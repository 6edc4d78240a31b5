package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, scope string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue atomically increments and returns a sequence scoped by an
// arbitrary key, e.g. ("global", "employee_number") for employee numbers or
// (periodID, "payslip_number") for per-period payslip numbering.
func (r *repository) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	var nextValue int64

	// Raw SQL for atomic UPSERT and increment to handle race conditions per scope/type
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (scope, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (scope, counter_type) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
