package timesheet

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Timesheet) error
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error)
	FindApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Timesheet, error)
	Update(ctx context.Context, t *Timesheet) error
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

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND week_start = ?", employeeID, weekStart).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("week_start DESC").
		Find(&rows).Error
	return rows, err
}

// FindApprovedInRange returns APPROVED timesheets whose week intersects
// [start, end], used when payroll pulls hours for a pay period.
func (r *repository) FindApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("week_start <= ? AND week_start >= ?", end, start.AddDate(0, 0, -6)).
		Order("week_start ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Save(t).Error
}
