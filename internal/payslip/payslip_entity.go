package payslip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft      = "DRAFT"
	StatusCalculated = "CALCULATED"
	StatusApproved   = "APPROVED"
	StatusPaid       = "PAID"
	StatusCancelled  = "CANCELLED"
)

// Payslip is one employee's pay record for one payroll period. Monetary
// fields are rewritten as a unit by the calculation pipeline; readers never
// see a half-updated gross/net pair.
type Payslip struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayslipNumber   string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_payslip_number"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payslip_employee_period"`
	PeriodID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payslip_employee_period;index"`
	BaseSalary      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	HoursWorked     decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	OvertimeHours   decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	OvertimeRate    decimal.Decimal `gorm:"type:decimal(4,2);not null;default:1.5"`
	OvertimePay     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	UnpaidLeaveDays int             `gorm:"not null;default:0"`
	GrossSalary     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalBonuses    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Status          string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	ApprovedBy *uuid.UUID
	ApprovedAt *time.Time

	PaymentMethod    *string `gorm:"type:varchar(30)"`
	PaymentReference *string `gorm:"type:varchar(100)"`
	PaymentDate      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

// PayslipDeduction records one applied deduction with the base the amount
// was computed from, so the figure can be audited after rates change.
type PayslipDeduction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayslipID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeductionTypeID uuid.UUID       `gorm:"type:uuid;not null"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CalculationBase decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt       time.Time
}

func (PayslipDeduction) TableName() string {
	return "payslip_deductions"
}

type PayslipBonus struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayslipID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	BonusTypeID          uuid.UUID       `gorm:"type:uuid;not null"`
	Name                 string          `gorm:"type:varchar(100);not null"`
	Amount               decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CalculationBase      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PerformanceReviewRef *string         `gorm:"type:varchar(100)"`
	CreatedAt            time.Time
}

func (PayslipBonus) TableName() string {
	return "payslip_bonuses"
}

// lineItemsMutable reports whether deductions and bonuses may still be
// attached. They freeze once the payslip is approved.
func lineItemsMutable(status string) bool {
	return status == StatusDraft || status == StatusCalculated
}
