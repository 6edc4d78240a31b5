package payslip

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	FindByID(ctx context.Context, id string) (*Payslip, error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (*Payslip, error)
	FindByPeriod(ctx context.Context, periodID string) ([]Payslip, error)
	LockPayslip(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, p *Payslip) error
	FindDeductions(ctx context.Context, payslipID string) ([]PayslipDeduction, error)
	FindBonuses(ctx context.Context, payslipID string) ([]PayslipBonus, error)
	CreateDeduction(ctx context.Context, d *PayslipDeduction) error
	CreateBonus(ctx context.Context, b *PayslipBonus) error
	FindPeriodRange(ctx context.Context, periodID string) (time.Time, time.Time, error)
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

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		First(&p, "employee_id = ? AND period_id = ?", employeeID, periodID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByPeriod(ctx context.Context, periodID string) ([]Payslip, error) {
	var rows []Payslip
	err := r.db.WithContext(ctx).
		Where("period_id = ?", periodID).
		Order("payslip_number ASC").
		Find(&rows).Error
	return rows, err
}

// LockPayslip takes a row lock so concurrent recomputes and transitions on
// the same payslip serialize. Returns the current status.
func (r *repository) LockPayslip(ctx context.Context, id string) (string, error) {
	if r.tx == nil {
		return "", errors.New("LockPayslip requires a transaction")
	}

	var status string
	err := r.tx.QueryRowContext(ctx, `
		SELECT status FROM payslips WHERE id = $1 FOR UPDATE
	`, id).Scan(&status)
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *repository) Update(ctx context.Context, p *Payslip) error {
	if r.tx != nil {
		query := `
			UPDATE payslips SET
				hours_worked = $2,
				overtime_hours = $3,
				overtime_rate = $4,
				overtime_pay = $5,
				unpaid_leave_days = $6,
				gross_salary = $7,
				total_bonuses = $8,
				total_deductions = $9,
				tax_amount = $10,
				net_salary = $11,
				status = $12,
				approved_by = $13,
				approved_at = $14,
				payment_method = $15,
				payment_reference = $16,
				payment_date = $17,
				updated_at = NOW()
			WHERE id = $1
		`
		_, err := r.tx.ExecContext(ctx, query,
			p.ID,
			p.HoursWorked, p.OvertimeHours, p.OvertimeRate, p.OvertimePay,
			p.UnpaidLeaveDays, p.GrossSalary, p.TotalBonuses,
			p.TotalDeductions, p.TaxAmount, p.NetSalary,
			p.Status, p.ApprovedBy, p.ApprovedAt,
			p.PaymentMethod, p.PaymentReference, p.PaymentDate,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) FindDeductions(ctx context.Context, payslipID string) ([]PayslipDeduction, error) {
	var rows []PayslipDeduction
	err := r.db.WithContext(ctx).
		Where("payslip_id = ?", payslipID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindBonuses(ctx context.Context, payslipID string) ([]PayslipBonus, error) {
	var rows []PayslipBonus
	err := r.db.WithContext(ctx).
		Where("payslip_id = ?", payslipID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateDeduction(ctx context.Context, d *PayslipDeduction) error {
	if r.tx != nil {
		query := `
			INSERT INTO payslip_deductions (
				id, payslip_id, deduction_type_id, name, amount, calculation_base, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		`
		_, err := r.tx.ExecContext(ctx, query,
			d.ID, d.PayslipID, d.DeductionTypeID, d.Name, d.Amount, d.CalculationBase,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) CreateBonus(ctx context.Context, b *PayslipBonus) error {
	if r.tx != nil {
		query := `
			INSERT INTO payslip_bonuses (
				id, payslip_id, bonus_type_id, name, amount, calculation_base, performance_review_ref, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`
		_, err := r.tx.ExecContext(ctx, query,
			b.ID, b.PayslipID, b.BonusTypeID, b.Name, b.Amount, b.CalculationBase, b.PerformanceReviewRef,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(b).Error
}

// FindPeriodRange reads the pay period bounds without importing the payroll
// package, which sits above this one.
func (r *repository) FindPeriodRange(ctx context.Context, periodID string) (time.Time, time.Time, error) {
	var row struct {
		StartDate time.Time
		EndDate   time.Time
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT start_date, end_date FROM payroll_periods WHERE id = ?`, periodID).
		Scan(&row).Error
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if row.StartDate.IsZero() {
		return time.Time{}, time.Time{}, gorm.ErrRecordNotFound
	}
	return row.StartDate, row.EndDate, nil
}
