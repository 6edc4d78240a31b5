package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	BaseSalary string    `json:"base_salary"`
	HireDate   string    `json:"hire_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
