package workschedule

type CreateWorkScheduleRequest struct {
	Name                 string  `json:"name" binding:"required"`
	EmployeeID           *string `json:"employee_id" binding:"omitempty,uuid"`
	DepartmentID         *string `json:"department_id" binding:"omitempty,uuid"`
	DailyHoursThreshold  string  `json:"daily_hours_threshold" binding:"required"`
	WeeklyHoursThreshold string  `json:"weekly_hours_threshold" binding:"required"`
}

type WorkScheduleResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	EmployeeID           *string `json:"employee_id,omitempty"`
	DepartmentID         *string `json:"department_id,omitempty"`
	DailyHoursThreshold  string  `json:"daily_hours_threshold"`
	WeeklyHoursThreshold string  `json:"weekly_hours_threshold"`
}
