package payslip

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrpay/internal/paycomponent"
	paysliperrors "go-hrpay/internal/payslip/errors"
)

func TestMissingMandatoryDeductions(t *testing.T) {
	pensionID := uuid.New()
	healthID := uuid.New()

	p := &Payslip{ID: uuid.New(), BaseSalary: d("10000")}
	types := []paycomponent.DeductionType{
		{ID: pensionID, Name: "Pension", Method: paycomponent.MethodPercentage, Amount: d("3")},
		{ID: healthID, Name: "Health", Method: paycomponent.MethodFixed, Amount: d("150")},
	}

	missing := MissingMandatoryDeductions(p, nil, types)
	require.Len(t, missing, 2)
	assert.Equal(t, "300.00", missing[0].Amount.StringFixed(2))
	assert.Equal(t, "10000.00", missing[0].CalculationBase.StringFixed(2))
	assert.Equal(t, "150.00", missing[1].Amount.StringFixed(2))

	// Second pass with everything attached adds nothing.
	again := MissingMandatoryDeductions(p, missing, types)
	assert.Empty(t, again)
}

func TestMissingMandatoryDeductions_SkipsAttached(t *testing.T) {
	pensionID := uuid.New()
	healthID := uuid.New()

	p := &Payslip{ID: uuid.New(), BaseSalary: d("10000")}
	existing := []PayslipDeduction{{DeductionTypeID: pensionID, Amount: d("300")}}
	types := []paycomponent.DeductionType{
		{ID: pensionID, Name: "Pension", Method: paycomponent.MethodPercentage, Amount: d("3")},
		{ID: healthID, Name: "Health", Method: paycomponent.MethodFixed, Amount: d("150")},
	}

	missing := MissingMandatoryDeductions(p, existing, types)
	require.Len(t, missing, 1)
	assert.Equal(t, healthID, missing[0].DeductionTypeID)
}

func TestBonusAmount(t *testing.T) {
	base := d("10000")

	fixed := paycomponent.BonusType{Method: paycomponent.MethodFixed, DefaultAmount: d("500")}
	amount, err := BonusAmount(fixed, base, nil)
	require.NoError(t, err)
	assert.Equal(t, "500.00", amount.StringFixed(2))

	pct := paycomponent.BonusType{Method: paycomponent.MethodPercentage, DefaultAmount: d("10")}
	amount, err = BonusAmount(pct, base, nil)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", amount.StringFixed(2))

	override := d("750")
	amount, err = BonusAmount(fixed, base, &override)
	require.NoError(t, err)
	assert.Equal(t, "750.00", amount.StringFixed(2))

	perf := paycomponent.BonusType{Method: paycomponent.MethodPerformance}
	_, err = BonusAmount(perf, base, nil)
	assert.ErrorIs(t, err, paysliperrors.ErrAmountRequired)

	amount, err = BonusAmount(perf, base, &override)
	require.NoError(t, err)
	assert.Equal(t, "750.00", amount.StringFixed(2))
}
