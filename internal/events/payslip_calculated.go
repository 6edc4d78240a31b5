package events

import "time"

const PayslipCalculatedTopic = "hr.payroll.payslip.calculated.v1"

type PayslipCalculatedEvent struct {
	EventType  string    `json:"event_type"`
	PayslipID  string    `json:"payslip_id"`
	EmployeeID string    `json:"employee_id"`
	PeriodID   string    `json:"period_id"`
	NetSalary  string    `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}
