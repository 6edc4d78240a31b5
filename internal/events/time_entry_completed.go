package events

import "time"

const TimeEntryCompletedTopic = "hr.timeentry.completed.v1"

// TimeEntryCompletedEvent triggers weekly timesheet recalculation for the
// week the entry falls into.
type TimeEntryCompletedEvent struct {
	EventType  string    `json:"event_type"`
	EntryID    string    `json:"entry_id"`
	EmployeeID string    `json:"employee_id"`
	WeekStart  string    `json:"week_start"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WeekStartOf truncates a timestamp to the Monday of its ISO week, in UTC.
// Both the producer and the timesheet consumer key weeks this way.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
