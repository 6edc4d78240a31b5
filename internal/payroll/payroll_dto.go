package payroll

type CreatePeriodRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	PayDate   string `json:"pay_date" binding:"required"`
	Frequency string `json:"frequency" binding:"required,oneof=MONTHLY BIWEEKLY WEEKLY"`
}

type PeriodResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	PayDate         string `json:"pay_date"`
	Frequency       string `json:"frequency"`
	Status          string `json:"status"`
	TotalGross      string `json:"total_gross"`
	TotalNet        string `json:"total_net"`
	TotalTax        string `json:"total_tax"`
	TotalDeductions string `json:"total_deductions"`
	PayslipCount    int    `json:"payslip_count"`
}

type ProcessResultResponse struct {
	Period          PeriodResponse `json:"period"`
	PayslipsCreated int            `json:"payslips_created"`
	EmployeesFailed int            `json:"employees_failed"`
}
