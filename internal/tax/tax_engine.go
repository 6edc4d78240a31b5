package tax

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Slice is one bracket's contribution to a computed tax amount.
type Slice struct {
	Bracket       TaxBracket
	TaxableAmount decimal.Decimal
	Tax           decimal.Decimal
}

// Result is the outcome of one tax calculation.
type Result struct {
	Tax decimal.Decimal
	// EffectiveRate is Tax divided by gross (zero when gross is zero).
	EffectiveRate decimal.Decimal
	Bracket       *TaxBracket
	// Breakdown lists each bracket touched by the covered amount. On a
	// schedule whose fixed amounts pre-encode the lower-bracket tax, the
	// slice taxes sum to Tax.
	Breakdown []Slice
	// Covered is false when gross falls outside the schedule, either below
	// the lowest bracket or past a bounded top bracket. The uncovered part
	// is left untaxed and the caller decides whether to warn.
	Covered   decimal.Decimal
	Uncovered decimal.Decimal
}

// Calculate walks the schedule for the bracket containing gross and applies
// the additive model: the bracket's fixed amount already carries the tax of
// every lower bracket, so only the marginal slice is computed here.
//
// If gross overshoots a bounded schedule, the top bracket is applied across
// its full width and the remainder stays untaxed.
func Calculate(gross decimal.Decimal, brackets []TaxBracket) Result {
	res := Result{
		Tax:           decimal.Zero,
		EffectiveRate: decimal.Zero,
		Covered:       decimal.Zero,
		Uncovered:     decimal.Zero,
	}
	if len(brackets) == 0 || gross.LessThanOrEqual(decimal.Zero) {
		res.Uncovered = maxDecimal(gross, decimal.Zero)
		return res
	}

	sorted := make([]TaxBracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinAmount.LessThan(sorted[j].MinAmount)
	})

	for i := range sorted {
		b := sorted[i]
		if b.Contains(gross) {
			res.Bracket = &sorted[i]
			res.Tax = b.FixedAmount.Add(gross.Sub(b.MinAmount).Mul(b.RatePercent).Div(hundred))
			res.Covered = gross
			res.Breakdown = breakdownFor(sorted, gross)
			res.EffectiveRate = res.Tax.Div(gross)
			return res
		}
	}

	// Gross is below the lowest bracket: nothing to tax.
	lowest := sorted[0]
	if gross.LessThan(lowest.MinAmount) {
		res.Uncovered = gross
		return res
	}

	// Gross is past the bounded top bracket: tax the covered width, leave
	// the rest alone.
	top := sorted[len(sorted)-1]
	res.Bracket = &sorted[len(sorted)-1]
	res.Tax = top.FixedAmount.Add(top.MaxAmount.Sub(top.MinAmount).Mul(top.RatePercent).Div(hundred))
	res.Covered = *top.MaxAmount
	res.Uncovered = gross.Sub(*top.MaxAmount)
	res.Breakdown = breakdownFor(sorted, res.Covered)
	res.EffectiveRate = res.Tax.Div(gross)
	return res
}

// breakdownFor recomputes the per-bracket slices for a covered amount:
// every bracket below it contributes its full width, the containing
// bracket only the marginal part.
func breakdownFor(sorted []TaxBracket, covered decimal.Decimal) []Slice {
	var slices []Slice
	for _, b := range sorted {
		if covered.LessThanOrEqual(b.MinAmount) {
			break
		}
		upper := covered
		if b.MaxAmount != nil && b.MaxAmount.LessThan(upper) {
			upper = *b.MaxAmount
		}
		taxable := upper.Sub(b.MinAmount)
		slices = append(slices, Slice{
			Bracket:       b,
			TaxableAmount: taxable,
			Tax:           taxable.Mul(b.RatePercent).Div(hundred),
		})
	}
	return slices
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
