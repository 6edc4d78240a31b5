package compensation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *CompensationHistory) error
	FindByEmployee(ctx context.Context, employeeID string) ([]CompensationHistory, error)
	LockEmployeeSalary(ctx context.Context, employeeID string) (decimal.Decimal, error)
	UpdateEmployeeSalary(ctx context.Context, employeeID string, salary decimal.Decimal) error
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

func (r *repository) Create(ctx context.Context, h *CompensationHistory) error {
	if r.tx != nil {
		query := `
			INSERT INTO compensation_histories (
				id, employee_id, change_type, previous_salary, new_salary,
				effective_date, reason, created_by, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		`
		_, err := r.tx.ExecContext(ctx, query,
			h.ID, h.EmployeeID, h.ChangeType,
			h.PreviousSalary, h.NewSalary, h.EffectiveDate,
			h.Reason, h.CreatedBy,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]CompensationHistory, error) {
	var rows []CompensationHistory
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

// LockEmployeeSalary reads the current base salary with a row lock so
// concurrent ledger appends for the same employee serialize.
func (r *repository) LockEmployeeSalary(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	if r.tx == nil {
		return decimal.Zero, errors.New("LockEmployeeSalary requires a transaction")
	}

	var raw string
	err := r.tx.QueryRowContext(ctx, `
		SELECT base_salary::text FROM employees
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, employeeID).Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

func (r *repository) UpdateEmployeeSalary(ctx context.Context, employeeID string, salary decimal.Decimal) error {
	if r.tx == nil {
		return errors.New("UpdateEmployeeSalary requires a transaction")
	}
	_, err := r.tx.ExecContext(ctx, `
		UPDATE employees SET base_salary = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, employeeID, salary)
	return err
}
