package paycomponent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MethodFixed       = "FIXED"
	MethodPercentage  = "PERCENTAGE"
	MethodPerformance = "PERFORMANCE"
)

// DeductionType is a catalog entry. Mandatory active types are applied to
// every payslip during calculation, the rest are attached manually.
type DeductionType struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_deduction_type_name"`
	Method      string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	IsMandatory bool            `gorm:"not null;default:false"`
	// IsPreTax is catalog metadata only: tax applies to the full gross
	// before deductions, so the flag never changes a calculation. Kept
	// for payroll reporting.
	IsPreTax  bool `gorm:"not null;default:false"`
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DeductionType) TableName() string {
	return "deduction_types"
}

type BonusType struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_bonus_type_name"`
	Method        string          `gorm:"type:varchar(20);not null"`
	DefaultAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	// IsTaxable is catalog metadata, see DeductionType.IsPreTax.
	IsTaxable bool `gorm:"not null;default:true"`
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (BonusType) TableName() string {
	return "bonus_types"
}

func IsValidDeductionMethod(m string) bool {
	return m == MethodFixed || m == MethodPercentage
}

func IsValidBonusMethod(m string) bool {
	return m == MethodFixed || m == MethodPercentage || m == MethodPerformance
}
