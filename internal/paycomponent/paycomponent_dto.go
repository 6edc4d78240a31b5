package paycomponent

type CreateDeductionTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Method      string `json:"method" binding:"required,oneof=FIXED PERCENTAGE"`
	Amount      string `json:"amount" binding:"required"`
	IsMandatory bool   `json:"is_mandatory"`
	IsPreTax    bool   `json:"is_pre_tax"`
}

type UpdateDeductionTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Method      string `json:"method" binding:"required,oneof=FIXED PERCENTAGE"`
	Amount      string `json:"amount" binding:"required"`
	IsMandatory bool   `json:"is_mandatory"`
	IsPreTax    bool   `json:"is_pre_tax"`
	IsActive    bool   `json:"is_active"`
}

type DeductionTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Method      string `json:"method"`
	Amount      string `json:"amount"`
	IsMandatory bool   `json:"is_mandatory"`
	IsPreTax    bool   `json:"is_pre_tax"`
	IsActive    bool   `json:"is_active"`
}

type CreateBonusTypeRequest struct {
	Name          string `json:"name" binding:"required"`
	Method        string `json:"method" binding:"required,oneof=FIXED PERCENTAGE PERFORMANCE"`
	DefaultAmount string `json:"default_amount" binding:"required"`
	IsTaxable     *bool  `json:"is_taxable"`
}

type BonusTypeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Method        string `json:"method"`
	DefaultAmount string `json:"default_amount"`
	IsTaxable     bool   `json:"is_taxable"`
	IsActive      bool   `json:"is_active"`
}
