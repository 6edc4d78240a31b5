package employee

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

	employeeerrors "go-hrpay/internal/employee/errors"
	"go-hrpay/internal/messaging/kafka"
)

type fakeRepo struct {
	Repository
	createFn           func(ctx context.Context, e *Employee) error
	findByIDFn         func(ctx context.Context, id string) (*Employee, error)
	findAllFn          func(ctx context.Context) ([]Employee, error)
	updateFn           func(ctx context.Context, e *Employee) error
	deleteFn           func(ctx context.Context, id string) error
	departmentExistsFn func(ctx context.Context, departmentID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, e *Employee) error {
	return f.createFn(ctx, e)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}

func (f *fakeRepo) Update(ctx context.Context, e *Employee) error {
	return f.updateFn(ctx, e)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	return f.departmentExistsFn(ctx, departmentID)
}

type fakeCounterRepo struct {
	next int64
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, scope, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepo struct {
	kafka.OutboxRepository
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func TestCreateEmployee_GeneratesNumberAndEnqueuesEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	departmentID := uuid.NewString()
	repo := &fakeRepo{
		createFn: func(ctx context.Context, e *Employee) error { return nil },
		departmentExistsFn: func(ctx context.Context, id string) (bool, error) {
			assert.Equal(t, departmentID, id)
			return true, nil
		},
	}
	outbox := &fakeOutboxRepo{}

	svc := NewService(db, repo, &fakeCounterRepo{next: 41}, outbox, nil)

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:     "Ada Pertiwi",
		Email:        "ada@example.com",
		DepartmentID: departmentID,
		BaseSalary:   "25000.00",
		HireDate:     "2025-03-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
	assert.Equal(t, "25000.00", resp.BaseSalary)
	assert.Equal(t, StatusActive, resp.EmploymentStatus)

	require.Len(t, outbox.created, 1)
	assert.Equal(t, "employee.created", outbox.created[0].EventType)
	assert.Equal(t, resp.ID, outbox.created[0].AggregateID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployee_RejectsNonPositiveSalary(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

	for _, salary := range []string{"0", "-100", "abc"} {
		_, err := svc.Create(context.Background(), CreateEmployeeRequest{
			FullName:     "Ada Pertiwi",
			Email:        "ada@example.com",
			DepartmentID: uuid.NewString(),
			BaseSalary:   salary,
			HireDate:     "2025-03-01",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidBaseSalary, "salary %q", salary)
	}
}

func TestCreateEmployee_RejectsUnknownDepartment(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		departmentExistsFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := NewService(db, repo, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:     "Ada Pertiwi",
		Email:        "ada@example.com",
		DepartmentID: uuid.NewString(),
		BaseSalary:   "25000",
		HireDate:     "2025-03-01",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
}

func TestCreateEmployee_RejectsBadHireDate(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:     "Ada Pertiwi",
		Email:        "ada@example.com",
		DepartmentID: uuid.NewString(),
		BaseSalary:   "25000",
		HireDate:     "01-03-2025",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
}

func TestUpdateEmployee_DoesNotTouchBaseSalary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	employeeID := uuid.New()
	departmentID := uuid.New()
	original := decimal.RequireFromString("30000")

	var saved *Employee
	repo := &fakeRepo{
		departmentExistsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return &Employee{
				ID:               employeeID,
				EmployeeNumber:   "EMP-000007",
				FullName:         "Old Name",
				Email:            "old@example.com",
				BaseSalary:       original,
				EmploymentStatus: StatusActive,
				HireDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			}, nil
		},
		updateFn: func(ctx context.Context, e *Employee) error {
			saved = e
			return nil
		},
	}

	svc := NewService(db, repo, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

	resp, err := svc.Update(context.Background(), employeeID.String(), UpdateEmployeeRequest{
		FullName:         "New Name",
		Email:            "new@example.com",
		DepartmentID:     departmentID.String(),
		EmploymentStatus: StatusInactive,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.BaseSalary.Equal(original))
	assert.Equal(t, "New Name", resp.FullName)
	assert.Equal(t, StatusInactive, resp.EmploymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee_RejectsInvalidStatus(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

	_, err = svc.Update(context.Background(), uuid.NewString(), UpdateEmployeeRequest{
		FullName:         "Name",
		Email:            "name@example.com",
		DepartmentID:     uuid.NewString(),
		EmploymentStatus: "RETIRED",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmploymentStatus)
}

func TestGetEmployee_InvalidID(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}
