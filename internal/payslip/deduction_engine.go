package payslip

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-hrpay/internal/paycomponent"
)

// MissingMandatoryDeductions builds line items for every mandatory active
// deduction type not yet attached to the payslip. Running it again after all
// mandatory types are attached yields nothing, which is what makes the
// recompute pipeline idempotent.
func MissingMandatoryDeductions(p *Payslip, existing []PayslipDeduction, types []paycomponent.DeductionType) []PayslipDeduction {
	attached := make(map[uuid.UUID]bool, len(existing))
	for _, d := range existing {
		attached[d.DeductionTypeID] = true
	}

	var missing []PayslipDeduction
	for _, dt := range types {
		if attached[dt.ID] {
			continue
		}
		missing = append(missing, PayslipDeduction{
			ID:              uuid.New(),
			PayslipID:       p.ID,
			DeductionTypeID: dt.ID,
			Name:            dt.Name,
			Amount:          componentAmount(dt.Method, dt.Amount, p.BaseSalary),
			CalculationBase: p.BaseSalary,
		})
	}
	return missing
}

// componentAmount resolves a FIXED amount as-is and a PERCENTAGE amount
// against the given base, rounded to cents.
func componentAmount(method string, amount, base decimal.Decimal) decimal.Decimal {
	if method == paycomponent.MethodPercentage {
		return base.Mul(amount).Div(hundred).Round(2)
	}
	return amount.Round(2)
}

func sumDeductions(items []PayslipDeduction) decimal.Decimal {
	total := decimal.Zero
	for _, d := range items {
		total = total.Add(d.Amount)
	}
	return total
}
