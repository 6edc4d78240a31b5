package timesheet

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
	"gorm.io/gorm"

	"go-hrpay/internal/timeentry"
	timesheeterrors "go-hrpay/internal/timesheet/errors"
	"go-hrpay/internal/workschedule"
)

func entry(start time.Time, hours float64, entryType string) timeentry.TimeEntry {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return timeentry.TimeEntry{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		EntryType:  entryType,
		StartTime:  start,
		EndTime:    &end,
		Status:     timeentry.StatusCompleted,
	}
}

func TestAggregate_SplitsPerEntryAgainstThreshold(t *testing.T) {
	monday := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	entries := []timeentry.TimeEntry{
		entry(monday, 10, timeentry.TypeRegular),                  // 8 regular + 2 overtime
		entry(monday.AddDate(0, 0, 1), 6, timeentry.TypeRegular),  // 6 regular
		entry(monday.AddDate(0, 0, 2), 2, timeentry.TypeOvertime), // explicit overtime
	}

	totals := Aggregate(entries, decimal.NewFromInt(8))

	assert.Equal(t, "14.00", totals.RegularHours.StringFixed(2))
	assert.Equal(t, "4.00", totals.OvertimeHours.StringFixed(2))
	assert.Equal(t, "18.00", totals.TotalHours.StringFixed(2))
	assert.Equal(t, 3, totals.EntryCount)
}

func TestAggregate_TwoShortEntriesSameDayDoNotMerge(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	entries := []timeentry.TimeEntry{
		entry(monday.Add(8*time.Hour), 5, timeentry.TypeRegular),
		entry(monday.Add(14*time.Hour), 5, timeentry.TypeRegular),
	}

	// 10 hours in one day, but per entry neither crosses the 8h threshold.
	totals := Aggregate(entries, decimal.NewFromInt(8))

	assert.Equal(t, "10.00", totals.RegularHours.StringFixed(2))
	assert.True(t, totals.OvertimeHours.IsZero())
}

func TestAggregate_SkipsBreakAndActiveEntries(t *testing.T) {
	monday := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	active := timeentry.TimeEntry{
		EntryType: timeentry.TypeRegular,
		StartTime: monday,
		Status:    timeentry.StatusActive,
	}
	entries := []timeentry.TimeEntry{
		entry(monday, 1, timeentry.TypeBreak),
		active,
	}

	totals := Aggregate(entries, decimal.NewFromInt(8))
	assert.True(t, totals.TotalHours.IsZero())
	assert.Equal(t, 0, totals.EntryCount)
	// The completed break entry still counts toward break time.
	assert.Equal(t, "1.00", totals.BreakHours.StringFixed(2))
}

func TestAggregate_SumsBreakHours(t *testing.T) {
	monday := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	worked := entry(monday, 10, timeentry.TypeRegular)
	worked.BreakSeconds = 1800 // 0.5h lunch inside the shift
	entries := []timeentry.TimeEntry{
		worked,
		entry(monday.AddDate(0, 0, 1), 1, timeentry.TypeBreak),
		entry(monday.AddDate(0, 0, 2), 2, timeentry.TypePersonal),
	}

	totals := Aggregate(entries, decimal.NewFromInt(8))

	// 10h shift net of the 0.5h break: 8 regular + 1.5 overtime.
	assert.Equal(t, "8.00", totals.RegularHours.StringFixed(2))
	assert.Equal(t, "1.50", totals.OvertimeHours.StringFixed(2))
	assert.Equal(t, "9.50", totals.TotalHours.StringFixed(2))
	// Break entry duration + in-shift break seconds; PERSONAL counts as neither.
	assert.Equal(t, "1.50", totals.BreakHours.StringFixed(2))
	assert.Equal(t, 1, totals.EntryCount)
}

type fakeRepo struct {
	Repository
	createFn     func(ctx context.Context, t *Timesheet) error
	findByIDFn   func(ctx context.Context, id string) (*Timesheet, error)
	findByWeekFn func(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error)
	updateFn     func(ctx context.Context, t *Timesheet) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, t *Timesheet) error { return f.createFn(ctx, t) }

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error) {
	return f.findByWeekFn(ctx, employeeID, weekStart)
}

func (f *fakeRepo) Update(ctx context.Context, t *Timesheet) error { return f.updateFn(ctx, t) }

type fakeEntryRepo struct {
	timeentry.Repository
	entries []timeentry.TimeEntry
}

func (f *fakeEntryRepo) FindCompletedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]timeentry.TimeEntry, error) {
	return f.entries, nil
}

type fakeScheduleService struct {
	workschedule.Service
	resolved workschedule.Resolved
}

func (f *fakeScheduleService) ResolveForEmployee(ctx context.Context, employeeID string) workschedule.Resolved {
	return f.resolved
}

func TestCalculate_CreatesDraftSheet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	var created *Timesheet
	repo := &fakeRepo{
		findByWeekFn: func(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, ts *Timesheet) error {
			created = ts
			return nil
		},
	}
	worked := entry(monday.Add(9*time.Hour), 10, timeentry.TypeRegular)
	worked.BreakSeconds = 3600
	entryRepo := &fakeEntryRepo{entries: []timeentry.TimeEntry{worked}}
	scheduleSvc := &fakeScheduleService{resolved: workschedule.DefaultResolved()}

	svc := NewService(db, repo, entryRepo, scheduleSvc)

	resp, err := svc.Calculate(context.Background(), CalculateTimesheetRequest{
		EmployeeID: uuid.NewString(),
		WeekStart:  "2025-06-02",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "8.00", resp.RegularHours)
	assert.Equal(t, "1.00", resp.OvertimeHours)
	assert.Equal(t, "1.00", resp.BreakHours)
	assert.Equal(t, "2025-06-02", resp.WeekStart)
	assert.Equal(t, "2025-06-08", resp.WeekEnd)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculate_RejectsNonMondayWeekStart(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeEntryRepo{}, &fakeScheduleService{resolved: workschedule.DefaultResolved()})

	_, err = svc.Calculate(context.Background(), CalculateTimesheetRequest{
		EmployeeID: uuid.NewString(),
		WeekStart:  "2025-06-03", // a Tuesday
	})
	assert.ErrorIs(t, err, timesheeterrors.ErrInvalidWeekStart)
}

func TestCalculate_LockedSheetRejectsRecalculation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findByWeekFn: func(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error) {
			return &Timesheet{ID: uuid.New(), Status: StatusApproved}, nil
		},
	}

	svc := NewService(db, repo, &fakeEntryRepo{}, &fakeScheduleService{resolved: workschedule.DefaultResolved()})

	_, err = svc.Calculate(context.Background(), CalculateTimesheetRequest{
		EmployeeID: uuid.NewString(),
		WeekStart:  "2025-06-02",
	})
	assert.ErrorIs(t, err, timesheeterrors.ErrTimesheetLocked)
}

func TestCalculate_RejectedSheetResetsToDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var updated *Timesheet
	repo := &fakeRepo{
		findByWeekFn: func(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error) {
			return &Timesheet{ID: uuid.New(), Status: StatusRejected}, nil
		},
		updateFn: func(ctx context.Context, ts *Timesheet) error {
			updated = ts
			return nil
		},
	}

	svc := NewService(db, repo, &fakeEntryRepo{}, &fakeScheduleService{resolved: workschedule.DefaultResolved()})

	resp, err := svc.Calculate(context.Background(), CalculateTimesheetRequest{
		EmployeeID: uuid.NewString(),
		WeekStart:  "2025-06-02",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, StatusDraft, resp.Status)
}

func TestTimesheetStatusTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusDraft, StatusApproved, false},
		{StatusSubmitted, StatusApproved, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusSubmitted, false},
		{StatusRejected, StatusSubmitted, true},
		{StatusPaid, StatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, isAllowedStatusTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
