package payrollconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollConfiguration is a single-row table holding the organization-wide
// payroll parameters. Defaults() is used until an admin saves one.
type PayrollConfiguration struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkingDaysPerMonth    int             `gorm:"not null;default:22"`
	WorkingHoursPerDay     decimal.Decimal `gorm:"type:decimal(4,2);not null;default:8"`
	OvertimeThresholdHours decimal.Decimal `gorm:"type:decimal(4,2);not null;default:8"`
	DefaultOvertimeRate    decimal.Decimal `gorm:"type:decimal(4,2);not null;default:1.5"`
	DefaultCountry         string          `gorm:"type:varchar(2);not null;default:'ID'"`
	TaxYear                int             `gorm:"not null"`
	PayslipNumberPrefix    string          `gorm:"type:varchar(10);not null;default:'PAY'"`
	UpdatedAt              time.Time
}

func (PayrollConfiguration) TableName() string {
	return "payroll_configurations"
}

func Defaults() PayrollConfiguration {
	return PayrollConfiguration{
		WorkingDaysPerMonth:    22,
		WorkingHoursPerDay:     decimal.NewFromInt(8),
		OvertimeThresholdHours: decimal.NewFromInt(8),
		DefaultOvertimeRate:    decimal.RequireFromString("1.5"),
		DefaultCountry:         "ID",
		TaxYear:                time.Now().UTC().Year(),
		PayslipNumberPrefix:    "PAY",
	}
}
