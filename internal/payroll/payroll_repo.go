package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PayrollPeriod) error
	FindAll(ctx context.Context) ([]PayrollPeriod, error)
	FindByID(ctx context.Context, id string) (*PayrollPeriod, error)
	HasOverlappingPeriod(ctx context.Context, start, end time.Time) (bool, error)
	LockPeriod(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, p *PayrollPeriod) error
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

func (r *repository) Create(ctx context.Context, p *PayrollPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]PayrollPeriod, error) {
	var rows []PayrollPeriod
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	var p PayrollPeriod
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollPeriod{}).
		Where("status <> ?", StatusCancelled).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LockPeriod row-locks the period so two workers cannot process the same
// batch at once. Returns the current status.
func (r *repository) LockPeriod(ctx context.Context, id string) (string, error) {
	if r.tx == nil {
		return "", errors.New("LockPeriod requires a transaction")
	}

	var status string
	err := r.tx.QueryRowContext(ctx, `
		SELECT status FROM payroll_periods WHERE id = $1 FOR UPDATE
	`, id).Scan(&status)
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *repository) Update(ctx context.Context, p *PayrollPeriod) error {
	if r.tx != nil {
		query := `
			UPDATE payroll_periods SET
				status = $2,
				total_gross = $3,
				total_net = $4,
				total_tax = $5,
				total_deductions = $6,
				payslip_count = $7,
				updated_at = NOW()
			WHERE id = $1
		`
		_, err := r.tx.ExecContext(ctx, query,
			p.ID, p.Status,
			p.TotalGross, p.TotalNet, p.TotalTax, p.TotalDeductions,
			p.PayslipCount,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(p).Error
}
