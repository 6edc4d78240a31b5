package tax

import (
	"context"
	"database/sql"

	"go-hrpay/internal/payrollconfig"
	taxerrors "go-hrpay/internal/tax/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=tax_service.go -destination=mock/tax_service_mock.go -package=mock
type Service interface {
	SetSchedule(ctx context.Context, req SetScheduleRequest) ([]BracketResponse, error)
	GetSchedule(ctx context.Context, country string, taxYear int) ([]BracketResponse, error)
	CalculateTax(ctx context.Context, req CalculateTaxRequest) (CalculateTaxResponse, error)
	// CalculateForGross is the programmatic entry used by payslip
	// calculation, country and year default from configuration.
	CalculateForGross(ctx context.Context, gross decimal.Decimal) (Result, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	configSvc payrollconfig.Service
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, configSvc payrollconfig.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("tax.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tax.service")
	}
	return &service{db: db, repo: repo, configSvc: configSvc, logger: l}
}

// SetSchedule validates the whole schedule and swaps it atomically. The
// additive fixed_amount pre-encoding is checked here so Calculate never has
// to re-derive lower-bracket sums.
func (s *service) SetSchedule(ctx context.Context, req SetScheduleRequest) ([]BracketResponse, error) {
	brackets, err := parseSchedule(req)
	if err != nil {
		return nil, err
	}
	if err := validateSchedule(brackets); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.ReplaceSchedule(ctx, req.Country, req.TaxYear, brackets); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("tax schedule replaced",
		zap.String("country", req.Country),
		zap.Int("tax_year", req.TaxYear),
		zap.Int("brackets", len(brackets)),
	)

	return mapToListResponse(brackets), nil
}

func (s *service) GetSchedule(ctx context.Context, country string, taxYear int) ([]BracketResponse, error) {
	rows, err := s.repo.FindSchedule(ctx, country, taxYear)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, taxerrors.ErrNoBracketsConfigured
	}
	return mapToListResponse(rows), nil
}

func (s *service) CalculateTax(ctx context.Context, req CalculateTaxRequest) (CalculateTaxResponse, error) {
	gross, err := decimal.NewFromString(req.GrossAmount)
	if err != nil || gross.IsNegative() {
		return CalculateTaxResponse{}, taxerrors.ErrInvalidGrossAmount
	}

	country, taxYear := req.Country, req.TaxYear
	if country == "" || taxYear == 0 {
		cfg, err := s.configSvc.Get(ctx)
		if err != nil {
			return CalculateTaxResponse{}, err
		}
		if country == "" {
			country = cfg.DefaultCountry
		}
		if taxYear == 0 {
			taxYear = cfg.TaxYear
		}
	}

	brackets, err := s.repo.FindSchedule(ctx, country, taxYear)
	if err != nil {
		return CalculateTaxResponse{}, err
	}
	if len(brackets) == 0 {
		return CalculateTaxResponse{}, taxerrors.ErrNoBracketsConfigured
	}

	result := Calculate(gross, brackets)
	if result.Uncovered.IsPositive() {
		s.logger.Warn("gross amount not fully covered by tax schedule",
			zap.String("country", country),
			zap.Int("tax_year", taxYear),
			zap.String("gross", gross.StringFixed(2)),
			zap.String("uncovered", result.Uncovered.StringFixed(2)),
		)
	}

	resp := CalculateTaxResponse{
		GrossAmount:     gross.StringFixed(2),
		Tax:             result.Tax.StringFixed(2),
		EffectiveRate:   result.EffectiveRate.StringFixed(4),
		CoveredAmount:   result.Covered.StringFixed(2),
		UncoveredAmount: result.Uncovered.StringFixed(2),
		Breakdown:       mapToSliceResponses(result.Breakdown),
	}
	if result.Bracket != nil {
		b := mapToResponse(*result.Bracket)
		resp.Bracket = &b
	}
	return resp, nil
}

func (s *service) CalculateForGross(ctx context.Context, gross decimal.Decimal) (Result, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return Result{}, err
	}

	brackets, err := s.repo.FindSchedule(ctx, cfg.DefaultCountry, cfg.TaxYear)
	if err != nil {
		return Result{}, err
	}
	if len(brackets) == 0 {
		return Result{}, taxerrors.ErrNoBracketsConfigured
	}

	result := Calculate(gross, brackets)
	if result.Uncovered.IsPositive() {
		s.logger.Warn("gross amount not fully covered by tax schedule",
			zap.String("country", cfg.DefaultCountry),
			zap.Int("tax_year", cfg.TaxYear),
			zap.String("uncovered", result.Uncovered.StringFixed(2)),
		)
	}
	return result, nil
}

func parseSchedule(req SetScheduleRequest) ([]TaxBracket, error) {
	brackets := make([]TaxBracket, 0, len(req.Brackets))
	for _, in := range req.Brackets {
		minAmount, err := decimal.NewFromString(in.MinAmount)
		if err != nil || minAmount.IsNegative() {
			return nil, taxerrors.ErrInvalidBracketBounds
		}
		rate, err := decimal.NewFromString(in.RatePercent)
		if err != nil || rate.IsNegative() || rate.GreaterThan(hundred) {
			return nil, taxerrors.ErrInvalidRate
		}
		fixed, err := decimal.NewFromString(in.FixedAmount)
		if err != nil || fixed.IsNegative() {
			return nil, taxerrors.ErrFixedAmountMismatch
		}

		b := TaxBracket{
			ID:          uuid.New(),
			Country:     req.Country,
			TaxYear:     req.TaxYear,
			MinAmount:   minAmount,
			RatePercent: rate,
			FixedAmount: fixed,
		}
		if in.MaxAmount != nil {
			maxAmount, err := decimal.NewFromString(*in.MaxAmount)
			if err != nil || !maxAmount.GreaterThan(minAmount) {
				return nil, taxerrors.ErrInvalidBracketBounds
			}
			b.MaxAmount = &maxAmount
		}
		brackets = append(brackets, b)
	}
	return brackets, nil
}

func validateSchedule(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return taxerrors.ErrEmptySchedule
	}

	if !brackets[0].MinAmount.IsZero() {
		return taxerrors.ErrScheduleMustStartAtZero
	}
	if !brackets[0].FixedAmount.IsZero() {
		return taxerrors.ErrFixedAmountMismatch
	}

	for i, b := range brackets {
		last := i == len(brackets)-1
		if b.MaxAmount == nil && !last {
			return taxerrors.ErrOpenBracketNotLast
		}

		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if prev.MaxAmount == nil || !b.MinAmount.Equal(*prev.MaxAmount) {
			return taxerrors.ErrScheduleNotContiguous
		}

		// fixed_amount must carry the exact cumulative tax below this
		// bracket, otherwise Calculate silently over- or under-taxes.
		expected := prev.FixedAmount.Add(
			prev.MaxAmount.Sub(prev.MinAmount).Mul(prev.RatePercent).Div(hundred))
		if !b.FixedAmount.Equal(expected) {
			return taxerrors.ErrFixedAmountMismatch
		}
	}
	return nil
}

func mapToResponse(b TaxBracket) BracketResponse {
	resp := BracketResponse{
		ID:          b.ID.String(),
		Country:     b.Country,
		TaxYear:     b.TaxYear,
		MinAmount:   b.MinAmount.StringFixed(2),
		RatePercent: b.RatePercent.StringFixed(2),
		FixedAmount: b.FixedAmount.StringFixed(2),
	}
	if b.MaxAmount != nil {
		v := b.MaxAmount.StringFixed(2)
		resp.MaxAmount = &v
	}
	return resp
}

func mapToSliceResponses(slices []Slice) []TaxSliceResponse {
	res := make([]TaxSliceResponse, len(slices))
	for i, s := range slices {
		res[i] = TaxSliceResponse{
			MinAmount:     s.Bracket.MinAmount.StringFixed(2),
			RatePercent:   s.Bracket.RatePercent.StringFixed(2),
			TaxableAmount: s.TaxableAmount.StringFixed(2),
			Tax:           s.Tax.StringFixed(2),
		}
		if s.Bracket.MaxAmount != nil {
			v := s.Bracket.MaxAmount.StringFixed(2)
			res[i].MaxAmount = &v
		}
	}
	return res
}

func mapToListResponse(brackets []TaxBracket) []BracketResponse {
	res := make([]BracketResponse, len(brackets))
	for i, b := range brackets {
		res[i] = mapToResponse(b)
	}
	return res
}
