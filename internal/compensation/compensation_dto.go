package compensation

type AppendCompensationRequest struct {
	ChangeType    string  `json:"change_type" binding:"required,oneof=HIRE PROMOTION ADJUSTMENT BONUS DEMOTION CORRECTION"`
	NewSalary     string  `json:"new_salary" binding:"required"`
	EffectiveDate string  `json:"effective_date" binding:"required"`
	Reason        *string `json:"reason"`
}

type CompensationResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	ChangeType     string  `json:"change_type"`
	PreviousSalary string  `json:"previous_salary"`
	NewSalary      string  `json:"new_salary"`
	EffectiveDate  string  `json:"effective_date"`
	Reason         *string `json:"reason,omitempty"`
	CreatedBy      *string `json:"created_by,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
