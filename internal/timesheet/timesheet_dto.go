package timesheet

type CalculateTimesheetRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	WeekStart  string `json:"week_start" binding:"required"`
}

type TimesheetResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	WeekStart     string `json:"week_start"`
	WeekEnd       string `json:"week_end"`
	RegularHours  string `json:"regular_hours"`
	OvertimeHours string `json:"overtime_hours"`
	BreakHours    string `json:"break_hours"`
	TotalHours    string `json:"total_hours"`
	EntryCount    int    `json:"entry_count"`
	Status        string `json:"status"`
}
