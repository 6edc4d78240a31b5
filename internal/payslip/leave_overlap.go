package payslip

import (
	"time"

	"go-hrpay/internal/leave"
)

// UnpaidLeaveDays sums the days of each approved unpaid leave that fall
// inside [periodStart, periodEnd], boundary days inclusive.
//
// Requests are counted independently: two approved leaves covering the same
// dates both contribute their overlap, so the total can exceed the period
// length. Deduplicating here would silently repair data the approval flow
// let through, so the raw sum is kept and the caller decides what to flag.
func UnpaidLeaveDays(leaves []leave.Leave, periodStart, periodEnd time.Time) int {
	total := 0
	for _, l := range leaves {
		total += overlapDays(l.StartDate, l.EndDate, periodStart, periodEnd)
	}
	return total
}

func overlapDays(start, end, periodStart, periodEnd time.Time) int {
	from := maxDate(truncateToDay(start), truncateToDay(periodStart))
	to := minDate(truncateToDay(end), truncateToDay(periodEnd))
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
