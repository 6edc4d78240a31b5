package tax

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxBracket is one slice of a progressive schedule. FixedAmount pre-encodes
// the total tax of all brackets below it, so computing tax for a gross amount
// touches exactly one bracket:
//
//	tax = fixed_amount + (gross - min_amount) * rate_percent / 100
//
// The pre-encoding is validated when a schedule is saved, not trusted at
// calculation time.
type TaxBracket struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Country     string           `gorm:"type:varchar(2);not null;uniqueIndex:uq_tax_bracket_slot"`
	TaxYear     int              `gorm:"not null;uniqueIndex:uq_tax_bracket_slot"`
	MinAmount   decimal.Decimal  `gorm:"type:decimal(14,2);not null;uniqueIndex:uq_tax_bracket_slot"`
	MaxAmount   *decimal.Decimal `gorm:"type:decimal(14,2)"`
	RatePercent decimal.Decimal  `gorm:"type:decimal(5,2);not null"`
	FixedAmount decimal.Decimal  `gorm:"type:decimal(14,2);not null"`
	CreatedAt   time.Time
}

func (TaxBracket) TableName() string {
	return "tax_brackets"
}

// Contains reports whether gross falls inside this bracket. Min is inclusive,
// max exclusive.
func (b TaxBracket) Contains(gross decimal.Decimal) bool {
	if gross.LessThan(b.MinAmount) {
		return false
	}
	if b.MaxAmount == nil {
		return true
	}
	return gross.LessThan(*b.MaxAmount)
}
