package payslip

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// HourlyRate derives an hourly wage from a monthly base salary:
// base / (workingDaysPerMonth * hoursPerDay).
func HourlyRate(baseSalary decimal.Decimal, workingDaysPerMonth int, hoursPerDay decimal.Decimal) decimal.Decimal {
	divisor := decimal.NewFromInt(int64(workingDaysPerMonth)).Mul(hoursPerDay)
	if !divisor.IsPositive() {
		return decimal.Zero
	}
	return baseSalary.Div(divisor)
}

// SplitHours separates worked hours into regular and overtime against a
// daily threshold. Negative input is treated as zero.
func SplitHours(hoursWorked, dailyThreshold decimal.Decimal) (regular, overtime decimal.Decimal) {
	if hoursWorked.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	if hoursWorked.LessThanOrEqual(dailyThreshold) {
		return hoursWorked, decimal.Zero
	}
	return dailyThreshold, hoursWorked.Sub(dailyThreshold)
}

// OvertimePay is overtimeHours * hourlyRate * multiplier, rounded to cents.
func OvertimePay(overtimeHours, hourlyRate, multiplier decimal.Decimal) decimal.Decimal {
	if overtimeHours.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return overtimeHours.Mul(hourlyRate).Mul(multiplier).Round(2)
}
