package payslip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-hrpay/internal/leave"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUnpaidLeaveDays_ClampsToPeriod(t *testing.T) {
	periodStart := day(2025, time.March, 1)
	periodEnd := day(2025, time.March, 31)

	leaves := []leave.Leave{
		// Starts before the period, ends inside it: 1..5 -> 5 days.
		{StartDate: day(2025, time.February, 20), EndDate: day(2025, time.March, 5)},
		// Fully inside: 10..12 -> 3 days.
		{StartDate: day(2025, time.March, 10), EndDate: day(2025, time.March, 12)},
		// Fully outside.
		{StartDate: day(2025, time.April, 1), EndDate: day(2025, time.April, 3)},
	}

	assert.Equal(t, 8, UnpaidLeaveDays(leaves, periodStart, periodEnd))
}

func TestUnpaidLeaveDays_SingleDay(t *testing.T) {
	periodStart := day(2025, time.March, 1)
	periodEnd := day(2025, time.March, 31)

	leaves := []leave.Leave{
		{StartDate: day(2025, time.March, 15), EndDate: day(2025, time.March, 15)},
	}
	assert.Equal(t, 1, UnpaidLeaveDays(leaves, periodStart, periodEnd))
}

func TestUnpaidLeaveDays_OverlappingRequestsBothCount(t *testing.T) {
	periodStart := day(2025, time.March, 1)
	periodEnd := day(2025, time.March, 31)

	// Two approved requests covering the whole period. Both are counted,
	// so the total exceeds the period length.
	leaves := []leave.Leave{
		{StartDate: day(2025, time.March, 1), EndDate: day(2025, time.March, 31)},
		{StartDate: day(2025, time.March, 1), EndDate: day(2025, time.March, 31)},
	}
	assert.Equal(t, 62, UnpaidLeaveDays(leaves, periodStart, periodEnd))
}
