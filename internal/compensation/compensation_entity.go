package compensation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ChangeTypeHire       = "HIRE"
	ChangeTypePromotion  = "PROMOTION"
	ChangeTypeAdjustment = "ADJUSTMENT"
	ChangeTypeBonus      = "BONUS"
	ChangeTypeDemotion   = "DEMOTION"
	ChangeTypeCorrection = "CORRECTION"
)

// CompensationHistory is an append-only ledger. Rows are never updated or
// deleted; corrections land as new CORRECTION entries.
type CompensationHistory struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChangeType     string          `gorm:"type:varchar(20);not null"`
	PreviousSalary decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	NewSalary      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	EffectiveDate  time.Time       `gorm:"type:date;not null"`
	Reason         *string         `gorm:"type:text"`
	CreatedBy      *string         `gorm:"type:varchar(100)"`
	CreatedAt      time.Time
}

func (CompensationHistory) TableName() string {
	return "compensation_histories"
}

func IsValidChangeType(t string) bool {
	switch t {
	case ChangeTypeHire, ChangeTypePromotion, ChangeTypeAdjustment,
		ChangeTypeBonus, ChangeTypeDemotion, ChangeTypeCorrection:
		return true
	}
	return false
}

// AdjustsBaseSalary reports whether a change type rewrites the employee's
// current base salary. BONUS entries are one-off payouts recorded for audit
// only.
func AdjustsBaseSalary(changeType string) bool {
	return changeType != ChangeTypeBonus
}
