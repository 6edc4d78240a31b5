package paycomponent

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paycomponenterrors "go-hrpay/internal/paycomponent/errors"
)

type fakeRepo struct {
	Repository
	createDeductionTypeFn func(ctx context.Context, dt *DeductionType) error
	findDeductionTypeFn   func(ctx context.Context, id string) (*DeductionType, error)
	createBonusTypeFn     func(ctx context.Context, bt *BonusType) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) CreateDeductionType(ctx context.Context, dt *DeductionType) error {
	return f.createDeductionTypeFn(ctx, dt)
}

func (f *fakeRepo) FindDeductionTypeByID(ctx context.Context, id string) (*DeductionType, error) {
	return f.findDeductionTypeFn(ctx, id)
}

func (f *fakeRepo) CreateBonusType(ctx context.Context, bt *BonusType) error {
	return f.createBonusTypeFn(ctx, bt)
}

func TestCreateDeductionType_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var saved *DeductionType
	repo := &fakeRepo{
		createDeductionTypeFn: func(ctx context.Context, dt *DeductionType) error {
			saved = dt
			return nil
		},
	}

	svc := NewService(db, repo)

	resp, err := svc.CreateDeductionType(context.Background(), CreateDeductionTypeRequest{
		Name:        "Pension Fund",
		Method:      MethodPercentage,
		Amount:      "3.5",
		IsMandatory: true,
		IsPreTax:    true,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "3.50", resp.Amount)
	assert.True(t, resp.IsMandatory)
	assert.True(t, resp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDeductionType_RejectsPercentageOver100(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err = svc.CreateDeductionType(context.Background(), CreateDeductionTypeRequest{
		Name:   "Broken",
		Method: MethodPercentage,
		Amount: "150",
	})
	assert.ErrorIs(t, err, paycomponenterrors.ErrInvalidPercentage)

	_, err = svc.CreateDeductionType(context.Background(), CreateDeductionTypeRequest{
		Name:   "Negative",
		Method: MethodFixed,
		Amount: "-10",
	})
	assert.ErrorIs(t, err, paycomponenterrors.ErrInvalidAmount)
}

func TestCreateDeductionType_DuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		createDeductionTypeFn: func(ctx context.Context, dt *DeductionType) error {
			return assert.AnError
		},
	}

	svc := NewService(db, repo)

	_, err = svc.CreateDeductionType(context.Background(), CreateDeductionTypeRequest{
		Name:   "Pension Fund",
		Method: MethodFixed,
		Amount: "100",
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBonusType_DefaultsTaxable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{
		createBonusTypeFn: func(ctx context.Context, bt *BonusType) error { return nil },
	}

	svc := NewService(db, repo)

	resp, err := svc.CreateBonusType(context.Background(), CreateBonusTypeRequest{
		Name:          "Performance Bonus",
		Method:        MethodPerformance,
		DefaultAmount: "0",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsTaxable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
