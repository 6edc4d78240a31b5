package payrollconfig

type UpdatePayrollConfigRequest struct {
	WorkingDaysPerMonth    int    `json:"working_days_per_month" binding:"required,min=1,max=31"`
	WorkingHoursPerDay     string `json:"working_hours_per_day" binding:"required"`
	OvertimeThresholdHours string `json:"overtime_threshold_hours" binding:"required"`
	DefaultOvertimeRate    string `json:"default_overtime_rate" binding:"required"`
	DefaultCountry         string `json:"default_country" binding:"required,len=2"`
	TaxYear                int    `json:"tax_year" binding:"required,min=2000"`
	PayslipNumberPrefix    string `json:"payslip_number_prefix" binding:"required,max=10"`
}

type PayrollConfigResponse struct {
	WorkingDaysPerMonth    int    `json:"working_days_per_month"`
	WorkingHoursPerDay     string `json:"working_hours_per_day"`
	OvertimeThresholdHours string `json:"overtime_threshold_hours"`
	DefaultOvertimeRate    string `json:"default_overtime_rate"`
	DefaultCountry         string `json:"default_country"`
	TaxYear                int    `json:"tax_year"`
	PayslipNumberPrefix    string `json:"payslip_number_prefix"`
}
