package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
	FindApprovedUnpaidOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusRejected, StatusCanceled}).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindApprovedUnpaidOverlapping returns APPROVED unpaid leaves intersecting
// [start, end], both bounds inclusive. Overlapping rows are returned as-is,
// the payroll side decides how to count them.
func (r *repository) FindApprovedUnpaidOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("is_paid = ?", false).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}
