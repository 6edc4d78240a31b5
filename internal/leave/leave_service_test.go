package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaveerrors "go-hrpay/internal/leave/errors"
)

type fakeRepo struct {
	Repository
	createFn     func(ctx context.Context, l *Leave) error
	findByIDFn   func(ctx context.Context, id string) (*Leave, error)
	hasOverlapFn func(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
	updateFn     func(ctx context.Context, l *Leave) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, l *Leave) error { return f.createFn(ctx, l) }

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Leave, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	return f.hasOverlapFn(ctx, employeeID, start, end, excludeID)
}

func (f *fakeRepo) Update(ctx context.Context, l *Leave) error { return f.updateFn(ctx, l) }

func TestCreateLeave_AllowsOverlapWithWarning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var created *Leave
	repo := &fakeRepo{
		hasOverlapFn: func(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
			return true, nil
		},
		createFn: func(ctx context.Context, l *Leave) error {
			created = l
			return nil
		},
	}

	svc := NewService(db, repo)

	resp, err := svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		LeaveType:  TypeUnpaid,
		StartDate:  "2025-06-02",
		EndDate:    "2025-06-04",
	})

	require.NoError(t, err, "overlap must not reject the request")
	require.NotNil(t, created)
	assert.Equal(t, 3, resp.TotalDays)
	assert.False(t, resp.IsPaid)
	assert.Equal(t, StatusPending, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLeave_PaidFlagFollowsType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{
		hasOverlapFn: func(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, l *Leave) error { return nil },
	}

	svc := NewService(db, repo)

	resp, err := svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		LeaveType:  TypeAnnual,
		StartDate:  "2025-06-02",
		EndDate:    "2025-06-02",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	assert.Equal(t, 1, resp.TotalDays)
}

func TestCreateLeave_ValidationErrors(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err = svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: "nope", LeaveType: TypeAnnual, StartDate: "2025-06-02", EndDate: "2025-06-04",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)

	_, err = svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: uuid.NewString(), LeaveType: "SABBATICAL", StartDate: "2025-06-02", EndDate: "2025-06-04",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)

	_, err = svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: uuid.NewString(), LeaveType: TypeAnnual, StartDate: "2025-06-05", EndDate: "2025-06-04",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestLeaveStatusTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusSubmitted, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusApproved, false},
		{StatusSubmitted, StatusApproved, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusSubmitted, StatusCanceled, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusSubmitted, false},
		{StatusCanceled, StatusSubmitted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, isAllowedStatusTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestApproveLeave_FromSubmitted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	leaveID := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) {
			return &Leave{
				ID:         leaveID,
				EmployeeID: uuid.New(),
				LeaveType:  TypeUnpaid,
				StartDate:  time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
				TotalDays:  3,
				Status:     StatusSubmitted,
			}, nil
		},
		updateFn: func(ctx context.Context, l *Leave) error { return nil },
	}

	svc := NewService(db, repo)

	resp, err := svc.Approve(context.Background(), leaveID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedAt)
}

func TestRejectLeave_RequiresReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) {
			return &Leave{ID: uuid.New(), Status: StatusSubmitted}, nil
		},
	}

	svc := NewService(db, repo)

	_, err = svc.Reject(context.Background(), uuid.NewString(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
}

func TestTransitionLeave_InvalidFromPaidOut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Leave, error) {
			return &Leave{ID: uuid.New(), Status: StatusApproved}, nil
		},
	}

	svc := NewService(db, repo)

	_, err = svc.Submit(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
}
