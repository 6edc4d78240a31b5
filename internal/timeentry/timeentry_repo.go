package timeentry

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimeEntry) error
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	FindActiveByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]TimeEntry, error)
	FindCompletedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]TimeEntry, error)
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
	Update(ctx context.Context, e *TimeEntry) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, StatusActive).
		Order("start_time DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_time DESC").
		Find(&rows).Error
	return rows, err
}

// FindCompletedInRange returns COMPLETED and APPROVED entries starting inside
// [start, end). Aggregation keys entries by their start time.
func (r *repository) FindCompletedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusCompleted, StatusApproved}).
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&TimeEntry{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("start_time < ? AND (end_time IS NULL OR end_time > ?)", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Update(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}
