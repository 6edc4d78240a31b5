package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft      = "DRAFT"
	StatusProcessing = "PROCESSING"
	StatusProcessed  = "PROCESSED"
	StatusFinalized  = "FINALIZED"
	StatusCancelled  = "CANCELLED"
)

const (
	FrequencyMonthly  = "MONTHLY"
	FrequencyBiweekly = "BIWEEKLY"
	FrequencyWeekly   = "WEEKLY"
)

// PayrollPeriod is one pay cycle. Running totals are refreshed from the
// period's payslips when the period finalizes.
type PayrollPeriod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	PayDate   time.Time `gorm:"type:date;not null"`
	Frequency string    `gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	Status    string    `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	TotalGross      decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TotalNet        decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TotalTax        decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	PayslipCount    int             `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollPeriod) TableName() string {
	return "payroll_periods"
}

func IsValidFrequency(f string) bool {
	return f == FrequencyMonthly || f == FrequencyBiweekly || f == FrequencyWeekly
}
