package payslip

import "time"

type MarkPaidRequest struct {
	PaymentMethod    string `json:"payment_method" binding:"required"`
	PaymentReference string `json:"payment_reference" binding:"required"`
	PaymentDate      string `json:"payment_date" binding:"required"`
}

type AddDeductionRequest struct {
	DeductionTypeID string  `json:"deduction_type_id" binding:"required,uuid"`
	Amount          *string `json:"amount"`
}

type AddBonusRequest struct {
	BonusTypeID          string  `json:"bonus_type_id" binding:"required,uuid"`
	Amount               *string `json:"amount"`
	PerformanceReviewRef *string `json:"performance_review_ref"`
}

type PayslipResponse struct {
	ID              string  `json:"id"`
	PayslipNumber   string  `json:"payslip_number"`
	EmployeeID      string  `json:"employee_id"`
	PeriodID        string  `json:"period_id"`
	BaseSalary      string  `json:"base_salary"`
	HoursWorked     string  `json:"hours_worked"`
	OvertimeHours   string  `json:"overtime_hours"`
	OvertimeRate    string  `json:"overtime_rate"`
	OvertimePay     string  `json:"overtime_pay"`
	UnpaidLeaveDays int     `json:"unpaid_leave_days"`
	GrossSalary     string  `json:"gross_salary"`
	TotalBonuses    string  `json:"total_bonuses"`
	TotalDeductions string  `json:"total_deductions"`
	TaxAmount       string  `json:"tax_amount"`
	NetSalary       string  `json:"net_salary"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	PaymentMethod   *string `json:"payment_method,omitempty"`
	PaymentRef      *string `json:"payment_reference,omitempty"`
	PaymentDate     *string `json:"payment_date,omitempty"`
}

type DeductionLineResponse struct {
	ID              string `json:"id"`
	DeductionTypeID string `json:"deduction_type_id"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	CalculationBase string `json:"calculation_base"`
}

type BonusLineResponse struct {
	ID                   string  `json:"id"`
	BonusTypeID          string  `json:"bonus_type_id"`
	Name                 string  `json:"name"`
	Amount               string  `json:"amount"`
	CalculationBase      string  `json:"calculation_base"`
	PerformanceReviewRef *string `json:"performance_review_ref,omitempty"`
}

type BreakdownResponse struct {
	Payslip    PayslipResponse         `json:"payslip"`
	Deductions []DeductionLineResponse `json:"deductions"`
	Bonuses    []BonusLineResponse     `json:"bonuses"`
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:              p.ID.String(),
		PayslipNumber:   p.PayslipNumber,
		EmployeeID:      p.EmployeeID.String(),
		PeriodID:        p.PeriodID.String(),
		BaseSalary:      p.BaseSalary.StringFixed(2),
		HoursWorked:     p.HoursWorked.StringFixed(2),
		OvertimeHours:   p.OvertimeHours.StringFixed(2),
		OvertimeRate:    p.OvertimeRate.StringFixed(2),
		OvertimePay:     p.OvertimePay.StringFixed(2),
		UnpaidLeaveDays: p.UnpaidLeaveDays,
		GrossSalary:     p.GrossSalary.StringFixed(2),
		TotalBonuses:    p.TotalBonuses.StringFixed(2),
		TotalDeductions: p.TotalDeductions.StringFixed(2),
		TaxAmount:       p.TaxAmount.StringFixed(2),
		NetSalary:       p.NetSalary.StringFixed(2),
		Status:          p.Status,
	}
	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if p.ApprovedAt != nil {
		v := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.PaymentMethod = p.PaymentMethod
	resp.PaymentRef = p.PaymentReference
	if p.PaymentDate != nil {
		v := p.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &v
	}
	return resp
}

func mapDeductionLines(items []PayslipDeduction) []DeductionLineResponse {
	res := make([]DeductionLineResponse, len(items))
	for i, d := range items {
		res[i] = DeductionLineResponse{
			ID:              d.ID.String(),
			DeductionTypeID: d.DeductionTypeID.String(),
			Name:            d.Name,
			Amount:          d.Amount.StringFixed(2),
			CalculationBase: d.CalculationBase.StringFixed(2),
		}
	}
	return res
}

func mapBonusLines(items []PayslipBonus) []BonusLineResponse {
	res := make([]BonusLineResponse, len(items))
	for i, b := range items {
		res[i] = BonusLineResponse{
			ID:                   b.ID.String(),
			BonusTypeID:          b.BonusTypeID.String(),
			Name:                 b.Name,
			Amount:               b.Amount.StringFixed(2),
			CalculationBase:      b.CalculationBase.StringFixed(2),
			PerformanceReviewRef: b.PerformanceReviewRef,
		}
	}
	return res
}
