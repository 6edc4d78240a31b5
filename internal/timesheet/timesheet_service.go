package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrpay/internal/events"
	"go-hrpay/internal/timeentry"
	timesheeterrors "go-hrpay/internal/timesheet/errors"
	"go-hrpay/internal/workschedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, req CalculateTimesheetRequest) (TimesheetResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, id string) (TimesheetResponse, error)
	Submit(ctx context.Context, id string) (TimesheetResponse, error)
	Approve(ctx context.Context, id string) (TimesheetResponse, error)
	Reject(ctx context.Context, id string) (TimesheetResponse, error)
	MarkPaid(ctx context.Context, id string) (TimesheetResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	entryRepo   timeentry.Repository
	scheduleSvc workschedule.Service
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	entryRepo timeentry.Repository,
	scheduleSvc workschedule.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		entryRepo:   entryRepo,
		scheduleSvc: scheduleSvc,
		logger:      l,
	}
}

// Calculate rebuilds the weekly rollup from completed entries. Recalculation
// is an upsert keyed on (employee, week) and only touches DRAFT or REJECTED
// sheets, anything further along the approval chain is locked.
func (s *service) Calculate(ctx context.Context, req CalculateTimesheetRequest) (TimesheetResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidEmployeeID
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidWeekStart
	}
	weekStart = weekStart.UTC()
	if !weekStart.Equal(events.WeekStartOf(weekStart)) {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidWeekStart
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	resolved := s.scheduleSvc.ResolveForEmployee(ctx, req.EmployeeID)

	entries, err := s.entryRepo.FindCompletedInRange(ctx, req.EmployeeID, weekStart, weekEnd)
	if err != nil {
		return TimesheetResponse{}, err
	}

	totals := Aggregate(entries, resolved.DailyHoursThreshold)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sheet, err := qtx.FindByEmployeeAndWeek(ctx, req.EmployeeID, weekStart)
	switch {
	case err == nil:
		if sheet.Status != StatusDraft && sheet.Status != StatusRejected {
			return TimesheetResponse{}, timesheeterrors.ErrTimesheetLocked
		}
		sheet.WeekEnd = weekStart.AddDate(0, 0, 6)
		sheet.RegularHours = totals.RegularHours
		sheet.OvertimeHours = totals.OvertimeHours
		sheet.BreakHours = totals.BreakHours
		sheet.TotalHours = totals.TotalHours
		sheet.EntryCount = totals.EntryCount
		sheet.Status = StatusDraft
		if err := qtx.Update(ctx, sheet); err != nil {
			return TimesheetResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sheet = &Timesheet{
			ID:            uuid.New(),
			EmployeeID:    employeeUUID,
			WeekStart:     weekStart,
			WeekEnd:       weekStart.AddDate(0, 0, 6),
			RegularHours:  totals.RegularHours,
			OvertimeHours: totals.OvertimeHours,
			BreakHours:    totals.BreakHours,
			TotalHours:    totals.TotalHours,
			EntryCount:    totals.EntryCount,
			Status:        StatusDraft,
		}
		if err := qtx.Create(ctx, sheet); err != nil {
			return TimesheetResponse{}, err
		}
	default:
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	s.logger.Info("timesheet calculated",
		zap.String("employee_id", req.EmployeeID),
		zap.String("week_start", req.WeekStart),
		zap.String("regular_hours", totals.RegularHours.StringFixed(2)),
		zap.String("overtime_hours", totals.OvertimeHours.StringFixed(2)),
		zap.String("threshold_source", resolved.Source),
	)

	return mapToResponse(*sheet), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]TimesheetResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, timesheeterrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]TimesheetResponse, len(rows))
	for i, t := range rows {
		res[i] = mapToResponse(t)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimesheetResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
		}
		return TimesheetResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Submit(ctx context.Context, id string) (TimesheetResponse, error) {
	return s.transitionStatus(ctx, id, StatusSubmitted)
}

func (s *service) Approve(ctx context.Context, id string) (TimesheetResponse, error) {
	return s.transitionStatus(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id string) (TimesheetResponse, error) {
	return s.transitionStatus(ctx, id, StatusRejected)
}

func (s *service) MarkPaid(ctx context.Context, id string) (TimesheetResponse, error) {
	return s.transitionStatus(ctx, id, StatusPaid)
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusDraft:
		return targetStatus == StatusSubmitted
	case StatusSubmitted:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	case StatusApproved:
		return targetStatus == StatusPaid
	case StatusRejected:
		return targetStatus == StatusSubmitted
	default:
		return false
	}
}

func (s *service) transitionStatus(ctx context.Context, id, targetStatus string) (TimesheetResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
		}
		return TimesheetResponse{}, err
	}
	if !isAllowedStatusTransition(t.Status, targetStatus) {
		s.logger.Warn("timesheet status transition invalid",
			zap.String("timesheet_id", id),
			zap.String("from_status", t.Status),
			zap.String("to_status", targetStatus),
		)
		return TimesheetResponse{}, timesheeterrors.ErrInvalidStatusTransition
	}

	t.Status = targetStatus
	if err := qtx.Update(ctx, t); err != nil {
		return TimesheetResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	s.logger.Info("timesheet status transition",
		zap.String("timesheet_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*t), nil
}

func mapToResponse(t Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:            t.ID.String(),
		EmployeeID:    t.EmployeeID.String(),
		WeekStart:     t.WeekStart.Format("2006-01-02"),
		WeekEnd:       t.WeekEnd.Format("2006-01-02"),
		RegularHours:  t.RegularHours.StringFixed(2),
		OvertimeHours: t.OvertimeHours.StringFixed(2),
		BreakHours:    t.BreakHours.StringFixed(2),
		TotalHours:    t.TotalHours.StringFixed(2),
		EntryCount:    t.EntryCount,
		Status:        t.Status,
	}
}
