package payslip

import (
	"github.com/shopspring/decimal"

	"go-hrpay/internal/paycomponent"
	paysliperrors "go-hrpay/internal/payslip/errors"
)

// BonusAmount resolves the amount for a bonus line item. Unlike deductions,
// bonuses are never auto-applied; the caller attaches them one by one and
// may override the type's default. Performance-linked bonuses carry no
// meaningful default, so an explicit amount is required.
func BonusAmount(bt paycomponent.BonusType, base decimal.Decimal, override *decimal.Decimal) (decimal.Decimal, error) {
	if bt.Method == paycomponent.MethodPerformance {
		if override == nil {
			return decimal.Zero, paysliperrors.ErrAmountRequired
		}
		return override.Round(2), nil
	}
	if override != nil {
		return override.Round(2), nil
	}
	return componentAmount(bt.Method, bt.DefaultAmount, base), nil
}

func sumBonuses(items []PayslipBonus) decimal.Decimal {
	total := decimal.Zero
	for _, b := range items {
		total = total.Add(b.Amount)
	}
	return total
}
