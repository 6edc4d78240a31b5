package tax

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrpay/internal/payrollconfig"
	taxerrors "go-hrpay/internal/tax/errors"
)

type fakeRepo struct {
	findScheduleFn    func(ctx context.Context, country string, taxYear int) ([]TaxBracket, error)
	replaceScheduleFn func(ctx context.Context, country string, taxYear int, brackets []TaxBracket) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) FindSchedule(ctx context.Context, country string, taxYear int) ([]TaxBracket, error) {
	return f.findScheduleFn(ctx, country, taxYear)
}

func (f *fakeRepo) ReplaceSchedule(ctx context.Context, country string, taxYear int, brackets []TaxBracket) error {
	return f.replaceScheduleFn(ctx, country, taxYear, brackets)
}

type fakeConfigService struct {
	payrollconfig.Service
	cfg payrollconfig.PayrollConfiguration
}

func (f *fakeConfigService) Get(ctx context.Context) (payrollconfig.PayrollConfiguration, error) {
	return f.cfg, nil
}

func scheduleRequest(brackets []BracketInput) SetScheduleRequest {
	return SetScheduleRequest{Country: "ID", TaxYear: 2025, Brackets: brackets}
}

func maxStr(s string) *string { return &s }

func TestSetSchedule_AcceptsValidAdditiveSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var saved []TaxBracket
	repo := &fakeRepo{
		replaceScheduleFn: func(ctx context.Context, country string, taxYear int, brackets []TaxBracket) error {
			saved = brackets
			return nil
		},
	}

	svc := NewService(db, repo, &fakeConfigService{})

	resp, err := svc.SetSchedule(context.Background(), scheduleRequest([]BracketInput{
		{MinAmount: "0", MaxAmount: maxStr("5000"), RatePercent: "5", FixedAmount: "0"},
		{MinAmount: "5000", MaxAmount: maxStr("15000"), RatePercent: "10", FixedAmount: "250"},
		{MinAmount: "15000", RatePercent: "20", FixedAmount: "1250"},
	}))

	require.NoError(t, err)
	assert.Len(t, resp, 3)
	assert.Len(t, saved, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSchedule_RejectsBrokenPreEncoding(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeConfigService{})

	// Second bracket claims 300 fixed, the lower bracket only accumulates 250.
	_, err = svc.SetSchedule(context.Background(), scheduleRequest([]BracketInput{
		{MinAmount: "0", MaxAmount: maxStr("5000"), RatePercent: "5", FixedAmount: "0"},
		{MinAmount: "5000", MaxAmount: maxStr("15000"), RatePercent: "10", FixedAmount: "300"},
	}))
	assert.ErrorIs(t, err, taxerrors.ErrFixedAmountMismatch)
}

func TestSetSchedule_RejectsGapsAndBadBounds(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeConfigService{})

	_, err = svc.SetSchedule(context.Background(), scheduleRequest([]BracketInput{
		{MinAmount: "0", MaxAmount: maxStr("5000"), RatePercent: "5", FixedAmount: "0"},
		{MinAmount: "6000", MaxAmount: maxStr("15000"), RatePercent: "10", FixedAmount: "250"},
	}))
	assert.ErrorIs(t, err, taxerrors.ErrScheduleNotContiguous)

	_, err = svc.SetSchedule(context.Background(), scheduleRequest([]BracketInput{
		{MinAmount: "1000", MaxAmount: maxStr("5000"), RatePercent: "5", FixedAmount: "0"},
	}))
	assert.ErrorIs(t, err, taxerrors.ErrScheduleMustStartAtZero)

	_, err = svc.SetSchedule(context.Background(), scheduleRequest([]BracketInput{
		{MinAmount: "0", RatePercent: "5", FixedAmount: "0"},
		{MinAmount: "5000", MaxAmount: maxStr("15000"), RatePercent: "10", FixedAmount: "250"},
	}))
	assert.ErrorIs(t, err, taxerrors.ErrOpenBracketNotLast)

	_, err = svc.SetSchedule(context.Background(), scheduleRequest([]BracketInput{
		{MinAmount: "0", MaxAmount: maxStr("5000"), RatePercent: "500", FixedAmount: "0"},
	}))
	assert.ErrorIs(t, err, taxerrors.ErrInvalidRate)
}

func TestCalculateTax_UsesConfigDefaults(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findScheduleFn: func(ctx context.Context, country string, taxYear int) ([]TaxBracket, error) {
			assert.Equal(t, "ID", country)
			assert.Equal(t, 2025, taxYear)
			return twoBrackets(), nil
		},
	}
	configSvc := &fakeConfigService{cfg: payrollconfig.PayrollConfiguration{
		DefaultCountry: "ID",
		TaxYear:        2025,
	}}

	svc := NewService(db, repo, configSvc)

	resp, err := svc.CalculateTax(context.Background(), CalculateTaxRequest{GrossAmount: "8000"})
	require.NoError(t, err)
	assert.Equal(t, "550.00", resp.Tax)
	assert.Equal(t, "0.0688", resp.EffectiveRate)
	require.Len(t, resp.Breakdown, 2)
	assert.Equal(t, "250.00", resp.Breakdown[0].Tax)
	assert.Equal(t, "300.00", resp.Breakdown[1].Tax)
}

func TestCalculateTax_NoSchedule(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findScheduleFn: func(ctx context.Context, country string, taxYear int) ([]TaxBracket, error) {
			return nil, nil
		},
	}

	svc := NewService(db, repo, &fakeConfigService{})

	_, err = svc.CalculateTax(context.Background(), CalculateTaxRequest{
		GrossAmount: "8000", Country: "SG", TaxYear: 2025,
	})
	assert.ErrorIs(t, err, taxerrors.ErrNoBracketsConfigured)
}
