package timesheet

import (
	"go-hrpay/internal/timeentry"

	"github.com/shopspring/decimal"
)

// Totals is the outcome of aggregating one week of entries.
type Totals struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	BreakHours    decimal.Decimal
	TotalHours    decimal.Decimal
	EntryCount    int
}

// Aggregate splits each entry's worked hours against the daily threshold:
// hours up to the threshold count as regular, the excess as overtime. The
// split is per entry, two short entries on the same day do not merge before
// the threshold is applied. Break time (BREAK entries plus the break
// seconds of worked entries) is summed separately and stays out of
// TotalHours. EntryCount counts entries that contributed worked hours.
func Aggregate(entries []timeentry.TimeEntry, dailyThreshold decimal.Decimal) Totals {
	t := Totals{
		RegularHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
		BreakHours:    decimal.Zero,
		TotalHours:    decimal.Zero,
	}

	for _, e := range entries {
		t.BreakHours = t.BreakHours.Add(e.BreakHours())

		hours := e.WorkedHours()
		if hours.IsZero() {
			continue
		}

		if e.EntryType == timeentry.TypeOvertime {
			// Explicit overtime entries bypass the threshold split.
			t.OvertimeHours = t.OvertimeHours.Add(hours)
		} else if hours.GreaterThan(dailyThreshold) {
			t.RegularHours = t.RegularHours.Add(dailyThreshold)
			t.OvertimeHours = t.OvertimeHours.Add(hours.Sub(dailyThreshold))
		} else {
			t.RegularHours = t.RegularHours.Add(hours)
		}
		t.EntryCount++
	}

	t.TotalHours = t.RegularHours.Add(t.OvertimeHours)
	return t
}
