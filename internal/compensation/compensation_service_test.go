package compensation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compensationerrors "go-hrpay/internal/compensation/errors"
)

type fakeRepo struct {
	createFn         func(ctx context.Context, h *CompensationHistory) error
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]CompensationHistory, error)
	lockSalaryFn     func(ctx context.Context, employeeID string) (decimal.Decimal, error)
	updateSalaryFn   func(ctx context.Context, employeeID string, salary decimal.Decimal) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, h *CompensationHistory) error {
	return f.createFn(ctx, h)
}

func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) ([]CompensationHistory, error) {
	return f.findByEmployeeFn(ctx, employeeID)
}

func (f *fakeRepo) LockEmployeeSalary(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return f.lockSalaryFn(ctx, employeeID)
}

func (f *fakeRepo) UpdateEmployeeSalary(ctx context.Context, employeeID string, salary decimal.Decimal) error {
	return f.updateSalaryFn(ctx, employeeID, salary)
}

func TestAppend_PromotionRewritesBaseSalary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	employeeID := uuid.NewString()

	var ledger *CompensationHistory
	var updatedSalary decimal.Decimal
	repo := &fakeRepo{
		lockSalaryFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
			return decimal.RequireFromString("25000"), nil
		},
		createFn: func(ctx context.Context, h *CompensationHistory) error {
			ledger = h
			return nil
		},
		updateSalaryFn: func(ctx context.Context, id string, salary decimal.Decimal) error {
			updatedSalary = salary
			return nil
		},
	}

	svc := NewService(db, repo)

	resp, err := svc.Append(context.Background(), employeeID, AppendCompensationRequest{
		ChangeType:    ChangeTypePromotion,
		NewSalary:     "30000",
		EffectiveDate: "2025-06-01",
	})

	require.NoError(t, err)
	require.NotNil(t, ledger)
	assert.Equal(t, "25000.00", resp.PreviousSalary)
	assert.Equal(t, "30000.00", resp.NewSalary)
	assert.True(t, updatedSalary.Equal(decimal.RequireFromString("30000")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_BonusDoesNotRewriteBaseSalary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	updated := false
	repo := &fakeRepo{
		lockSalaryFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
			return decimal.RequireFromString("25000"), nil
		},
		createFn: func(ctx context.Context, h *CompensationHistory) error { return nil },
		updateSalaryFn: func(ctx context.Context, id string, salary decimal.Decimal) error {
			updated = true
			return nil
		},
	}

	svc := NewService(db, repo)

	_, err = svc.Append(context.Background(), uuid.NewString(), AppendCompensationRequest{
		ChangeType:    ChangeTypeBonus,
		NewSalary:     "2000",
		EffectiveDate: "2025-06-01",
	})

	require.NoError(t, err)
	assert.False(t, updated, "BONUS must not rewrite base salary")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_UnknownEmployee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		lockSalaryFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
			return decimal.Zero, sql.ErrNoRows
		},
	}

	svc := NewService(db, repo)

	_, err = svc.Append(context.Background(), uuid.NewString(), AppendCompensationRequest{
		ChangeType:    ChangeTypeAdjustment,
		NewSalary:     "20000",
		EffectiveDate: "2025-06-01",
	})
	assert.ErrorIs(t, err, compensationerrors.ErrEmployeeNotFound)
}

func TestAppend_InvalidInputs(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{})
	employeeID := uuid.NewString()

	_, err = svc.Append(context.Background(), employeeID, AppendCompensationRequest{
		ChangeType: "RAISE", NewSalary: "100", EffectiveDate: "2025-06-01",
	})
	assert.ErrorIs(t, err, compensationerrors.ErrInvalidChangeType)

	_, err = svc.Append(context.Background(), employeeID, AppendCompensationRequest{
		ChangeType: ChangeTypeAdjustment, NewSalary: "-5", EffectiveDate: "2025-06-01",
	})
	assert.ErrorIs(t, err, compensationerrors.ErrInvalidNewSalary)

	_, err = svc.Append(context.Background(), employeeID, AppendCompensationRequest{
		ChangeType: ChangeTypeAdjustment, NewSalary: "100", EffectiveDate: "June 1",
	})
	assert.ErrorIs(t, err, compensationerrors.ErrInvalidEffectiveDate)
}

func TestRecordHire_IdempotentOnRedelivery(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	employeeID := uuid.New()
	repo := &fakeRepo{
		findByEmployeeFn: func(ctx context.Context, id string) ([]CompensationHistory, error) {
			return []CompensationHistory{{
				ID:         uuid.New(),
				EmployeeID: employeeID,
				ChangeType: ChangeTypeHire,
				NewSalary:  decimal.RequireFromString("25000"),
			}}, nil
		},
		createFn: func(ctx context.Context, h *CompensationHistory) error {
			t.Fatal("must not append a second HIRE entry")
			return nil
		},
	}

	svc := NewService(db, repo)

	err = svc.RecordHire(context.Background(), employeeID.String(),
		decimal.RequireFromString("25000"), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
}
