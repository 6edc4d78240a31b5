package workschedule

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	Repository
	findByEmployeeFn   func(ctx context.Context, employeeID string) (*WorkSchedule, error)
	findByDepartmentFn func(ctx context.Context, departmentID string) (*WorkSchedule, error)
	findDepartmentFn   func(ctx context.Context, employeeID string) (*string, error)
	createFn           func(ctx context.Context, ws *WorkSchedule) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, ws *WorkSchedule) error { return f.createFn(ctx, ws) }

func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) (*WorkSchedule, error) {
	return f.findByEmployeeFn(ctx, employeeID)
}

func (f *fakeRepo) FindByDepartment(ctx context.Context, departmentID string) (*WorkSchedule, error) {
	return f.findByDepartmentFn(ctx, departmentID)
}

func (f *fakeRepo) FindEmployeeDepartment(ctx context.Context, employeeID string) (*string, error) {
	return f.findDepartmentFn(ctx, employeeID)
}

func TestResolveForEmployee_PrefersEmployeeSchedule(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByEmployeeFn: func(ctx context.Context, id string) (*WorkSchedule, error) {
			return &WorkSchedule{
				DailyHoursThreshold:  decimal.NewFromInt(6),
				WeeklyHoursThreshold: decimal.NewFromInt(30),
			}, nil
		},
	}

	svc := NewService(db, repo)

	resolved := svc.ResolveForEmployee(context.Background(), uuid.NewString())
	assert.Equal(t, SourceEmployee, resolved.Source)
	assert.True(t, resolved.DailyHoursThreshold.Equal(decimal.NewFromInt(6)))
}

func TestResolveForEmployee_FallsBackToDepartment(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	departmentID := uuid.NewString()
	repo := &fakeRepo{
		findByEmployeeFn: func(ctx context.Context, id string) (*WorkSchedule, error) {
			return nil, gorm.ErrRecordNotFound
		},
		findDepartmentFn: func(ctx context.Context, id string) (*string, error) {
			return &departmentID, nil
		},
		findByDepartmentFn: func(ctx context.Context, id string) (*WorkSchedule, error) {
			return &WorkSchedule{
				DailyHoursThreshold:  decimal.NewFromInt(7),
				WeeklyHoursThreshold: decimal.NewFromInt(35),
			}, nil
		},
	}

	svc := NewService(db, repo)

	resolved := svc.ResolveForEmployee(context.Background(), uuid.NewString())
	assert.Equal(t, SourceDepartment, resolved.Source)
	assert.True(t, resolved.WeeklyHoursThreshold.Equal(decimal.NewFromInt(35)))
}

func TestResolveForEmployee_DefaultsAndNeverFails(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByEmployeeFn: func(ctx context.Context, id string) (*WorkSchedule, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := NewService(db, repo)

	resolved := svc.ResolveForEmployee(context.Background(), uuid.NewString())
	assert.Equal(t, SourceDefault, resolved.Source)
	assert.True(t, resolved.DailyHoursThreshold.Equal(decimal.NewFromInt(8)))
	assert.True(t, resolved.WeeklyHoursThreshold.Equal(decimal.NewFromInt(40)))
}

func TestCreateWorkSchedule_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{})
	employeeID := uuid.NewString()

	_, err = svc.Create(context.Background(), CreateWorkScheduleRequest{
		Name: "night shift", EmployeeID: &employeeID,
		DailyHoursThreshold: "0", WeeklyHoursThreshold: "40",
	})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = svc.Create(context.Background(), CreateWorkScheduleRequest{
		Name: "night shift", EmployeeID: &employeeID,
		DailyHoursThreshold: "8", WeeklyHoursThreshold: "200",
	})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = svc.Create(context.Background(), CreateWorkScheduleRequest{
		Name:                "orphan",
		DailyHoursThreshold: "8", WeeklyHoursThreshold: "40",
	})
	assert.ErrorIs(t, err, ErrScopeRequired)
}
