package tax

type BracketInput struct {
	MinAmount   string  `json:"min_amount" binding:"required"`
	MaxAmount   *string `json:"max_amount"`
	RatePercent string  `json:"rate_percent" binding:"required"`
	FixedAmount string  `json:"fixed_amount" binding:"required"`
}

type SetScheduleRequest struct {
	Country  string         `json:"country" binding:"required,len=2"`
	TaxYear  int            `json:"tax_year" binding:"required,min=2000"`
	Brackets []BracketInput `json:"brackets" binding:"required,min=1,dive"`
}

type BracketResponse struct {
	ID          string  `json:"id"`
	Country     string  `json:"country"`
	TaxYear     int     `json:"tax_year"`
	MinAmount   string  `json:"min_amount"`
	MaxAmount   *string `json:"max_amount,omitempty"`
	RatePercent string  `json:"rate_percent"`
	FixedAmount string  `json:"fixed_amount"`
}

type CalculateTaxRequest struct {
	GrossAmount string `json:"gross_amount" binding:"required"`
	Country     string `json:"country"`
	TaxYear     int    `json:"tax_year"`
}

type TaxSliceResponse struct {
	MinAmount     string  `json:"min_amount"`
	MaxAmount     *string `json:"max_amount,omitempty"`
	RatePercent   string  `json:"rate_percent"`
	TaxableAmount string  `json:"taxable_amount"`
	Tax           string  `json:"tax"`
}

type CalculateTaxResponse struct {
	GrossAmount     string             `json:"gross_amount"`
	Tax             string             `json:"tax"`
	EffectiveRate   string             `json:"effective_rate"`
	CoveredAmount   string             `json:"covered_amount"`
	UncoveredAmount string             `json:"uncovered_amount"`
	Bracket         *BracketResponse   `json:"bracket,omitempty"`
	Breakdown       []TaxSliceResponse `json:"breakdown"`
}
