package timeentry

type ClockInRequest struct {
	EntryType string  `json:"entry_type"`
	Notes     *string `json:"notes"`
}

type ClockOutRequest struct {
	BreakSeconds *int    `json:"break_seconds" binding:"omitempty,min=0"`
	Notes        *string `json:"notes"`
}

type CreateTimeEntryRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required,uuid"`
	EntryType    string  `json:"entry_type" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      string  `json:"end_time" binding:"required"`
	BreakSeconds int     `json:"break_seconds" binding:"min=0"`
	Notes        *string `json:"notes"`
}

type RejectTimeEntryRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EntryType       string  `json:"entry_type"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	BreakSeconds    int     `json:"break_seconds"`
	WorkedHours     string  `json:"worked_hours"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}
