package timeentry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-hrpay/internal/messaging/kafka"
	timeentryerrors "go-hrpay/internal/timeentry/errors"
)

type fakeRepo struct {
	Repository
	createFn         func(ctx context.Context, e *TimeEntry) error
	findByIDFn       func(ctx context.Context, id string) (*TimeEntry, error)
	findActiveFn     func(ctx context.Context, employeeID string) (*TimeEntry, error)
	hasOverlappingFn func(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
	updateFn         func(ctx context.Context, e *TimeEntry) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, e *TimeEntry) error { return f.createFn(ctx, e) }

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindActiveByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error) {
	return f.findActiveFn(ctx, employeeID)
}

func (f *fakeRepo) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	return f.hasOverlappingFn(ctx, employeeID, start, end, excludeID)
}

func (f *fakeRepo) Update(ctx context.Context, e *TimeEntry) error { return f.updateFn(ctx, e) }

type fakeOutboxRepo struct {
	kafka.OutboxRepository
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func TestClockIn_RejectsSecondActiveEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findActiveFn: func(ctx context.Context, employeeID string) (*TimeEntry, error) {
			return &TimeEntry{ID: uuid.New(), Status: StatusActive}, nil
		},
	}

	svc := NewService(db, repo, &fakeOutboxRepo{})

	_, err = svc.ClockIn(context.Background(), uuid.NewString(), ClockInRequest{})
	assert.ErrorIs(t, err, timeentryerrors.ErrAlreadyClockedIn)
}

func TestClockOut_CompletesEntryAndEnqueuesEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	employeeID := uuid.New()
	start := time.Now().UTC().Add(-9 * time.Hour)

	var updated *TimeEntry
	repo := &fakeRepo{
		findActiveFn: func(ctx context.Context, id string) (*TimeEntry, error) {
			return &TimeEntry{
				ID:         uuid.New(),
				EmployeeID: employeeID,
				EntryType:  TypeRegular,
				StartTime:  start,
				Status:     StatusActive,
			}, nil
		},
		updateFn: func(ctx context.Context, e *TimeEntry) error {
			updated = e
			return nil
		},
	}
	outbox := &fakeOutboxRepo{}

	svc := NewService(db, repo, outbox)

	breakSeconds := 3600
	resp, err := svc.ClockOut(context.Background(), employeeID.String(), ClockOutRequest{
		BreakSeconds: &breakSeconds,
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.NotNil(t, resp.EndTime)
	assert.Equal(t, 3600, resp.BreakSeconds)

	require.Len(t, outbox.created, 1)
	assert.Equal(t, "time_entry.completed", outbox.created[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClockOut_NoActiveEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findActiveFn: func(ctx context.Context, id string) (*TimeEntry, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, &fakeOutboxRepo{})

	_, err = svc.ClockOut(context.Background(), uuid.NewString(), ClockOutRequest{})
	assert.ErrorIs(t, err, timeentryerrors.ErrNoActiveEntry)
}

func TestCreateManualEntry_RejectsOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		hasOverlappingFn: func(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
			return true, nil
		},
	}

	svc := NewService(db, repo, &fakeOutboxRepo{})

	_, err = svc.Create(context.Background(), CreateTimeEntryRequest{
		EmployeeID: uuid.NewString(),
		EntryType:  TypeRegular,
		StartTime:  "2025-06-02T09:00:00Z",
		EndTime:    "2025-06-02T17:00:00Z",
	})
	assert.ErrorIs(t, err, timeentryerrors.ErrEntryOverlap)
}

func TestCreateManualEntry_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeOutboxRepo{})
	employeeID := uuid.NewString()

	_, err = svc.Create(context.Background(), CreateTimeEntryRequest{
		EmployeeID: employeeID, EntryType: "NAP",
		StartTime: "2025-06-02T09:00:00Z", EndTime: "2025-06-02T17:00:00Z",
	})
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidEntryType)

	_, err = svc.Create(context.Background(), CreateTimeEntryRequest{
		EmployeeID: employeeID, EntryType: TypeRegular,
		StartTime: "2025-06-02T17:00:00Z", EndTime: "2025-06-02T09:00:00Z",
	})
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidTimeRange)

	_, err = svc.Create(context.Background(), CreateTimeEntryRequest{
		EmployeeID: employeeID, EntryType: TypeRegular,
		StartTime: "2025-06-02T09:00:00Z", EndTime: "2025-06-02T17:00:00Z",
		BreakSeconds: 9 * 3600,
	})
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidBreakSeconds)
}

func TestWorkedHours(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(9 * time.Hour)

	e := TimeEntry{
		EntryType:    TypeRegular,
		StartTime:    start,
		EndTime:      &end,
		BreakSeconds: 3600,
	}
	assert.Equal(t, "8.00", e.WorkedHours().StringFixed(2))

	e.EntryType = TypeBreak
	assert.True(t, e.WorkedHours().IsZero(), "break entries contribute no hours")

	e.EntryType = TypeRegular
	e.EndTime = nil
	assert.True(t, e.WorkedHours().IsZero(), "active entries contribute no hours")
}

func TestApprove_OnlyFromCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*TimeEntry, error) {
			return &TimeEntry{ID: uuid.New(), Status: StatusActive}, nil
		},
	}

	svc := NewService(db, repo, &fakeOutboxRepo{})

	_, err = svc.Approve(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidStatusTransition)
}
