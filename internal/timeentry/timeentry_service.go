package timeentry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hrpay/internal/events"
	"go-hrpay/internal/messaging/kafka"
	"go-hrpay/internal/shared/contextutil"
	timeentryerrors "go-hrpay/internal/timeentry/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (TimeEntryResponse, error)
	Create(ctx context.Context, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]TimeEntryResponse, error)
	GetByID(ctx context.Context, id string) (TimeEntryResponse, error)
	Approve(ctx context.Context, id string) (TimeEntryResponse, error)
	Reject(ctx context.Context, id, rejectionReason string) (TimeEntryResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{db: db, repo: repo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (TimeEntryResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = TypeRegular
	}
	if !IsValidEntryType(entryType) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindActiveByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeEntryResponse{}, err
	}
	if existing != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrAlreadyClockedIn
	}

	e := &TimeEntry{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		EntryType:  entryType,
		StartTime:  time.Now().UTC(),
		Status:     StatusActive,
		Notes:      req.Notes,
	}

	if err := qtx.Create(ctx, e); err != nil {
		return TimeEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("clock in",
		zap.String("entry_id", e.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*e), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (TimeEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrNoActiveEntry
		}
		return TimeEntryResponse{}, err
	}

	now := time.Now().UTC()
	if !now.After(e.StartTime) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidTimeRange
	}

	if req.BreakSeconds != nil {
		if *req.BreakSeconds < 0 || float64(*req.BreakSeconds) >= now.Sub(e.StartTime).Seconds() {
			return TimeEntryResponse{}, timeentryerrors.ErrInvalidBreakSeconds
		}
		e.BreakSeconds = *req.BreakSeconds
	}
	if req.Notes != nil {
		e.Notes = req.Notes
	}

	e.EndTime = &now
	e.Status = StatusCompleted

	if err := qtx.Update(ctx, e); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := s.enqueueCompletedEvent(ctx, tx, e); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("clock out",
		zap.String("entry_id", e.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("worked_hours", e.WorkedHours().StringFixed(2)),
	)
	return mapToResponse(*e), nil
}

// Create records a manual entry with explicit start and end, used for
// corrections and backfills. Overlapping intervals are rejected outright.
func (s *service) Create(ctx context.Context, req CreateTimeEntryRequest) (TimeEntryResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}
	if !IsValidEntryType(req.EntryType) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryType
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidTimeRange
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidTimeRange
	}
	if !endTime.After(startTime) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidTimeRange
	}
	if req.BreakSeconds < 0 || float64(req.BreakSeconds) >= endTime.Sub(startTime).Seconds() {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidBreakSeconds
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlapping(ctx, req.EmployeeID, startTime, endTime, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	if overlap {
		return TimeEntryResponse{}, timeentryerrors.ErrEntryOverlap
	}

	e := &TimeEntry{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		EntryType:    req.EntryType,
		StartTime:    startTime.UTC(),
		EndTime:      ptrTime(endTime.UTC()),
		BreakSeconds: req.BreakSeconds,
		Status:       StatusCompleted,
		Notes:        req.Notes,
	}

	if err := qtx.Create(ctx, e); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := s.enqueueCompletedEvent(ctx, tx, e); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) enqueueCompletedEvent(ctx context.Context, tx *sql.Tx, e *TimeEntry) error {
	payload, err := json.Marshal(events.TimeEntryCompletedEvent{
		EventType:  "time_entry.completed",
		EntryID:    e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		WeekStart:  events.WeekStartOf(e.StartTime).Format("2006-01-02"),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "time_entry",
		AggregateID:   e.ID.String(),
		EventType:     "time_entry.completed",
		Topic:         events.TimeEntryCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, timeentryerrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]TimeEntryResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimeEntryResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrTimeEntryNotFound
		}
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Approve(ctx context.Context, id string) (TimeEntryResponse, error) {
	return s.transitionStatus(ctx, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id, rejectionReason string) (TimeEntryResponse, error) {
	if rejectionReason == "" {
		return TimeEntryResponse{}, timeentryerrors.ErrRejectionReasonRequired
	}
	return s.transitionStatus(ctx, id, StatusRejected, &rejectionReason)
}

func (s *service) transitionStatus(ctx context.Context, id, targetStatus string, rejectionReason *string) (TimeEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrTimeEntryNotFound
		}
		return TimeEntryResponse{}, err
	}
	// Only completed entries are reviewable.
	if e.Status != StatusCompleted {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidStatusTransition
	}

	e.Status = targetStatus
	e.RejectionReason = rejectionReason
	if targetStatus == StatusApproved {
		if uid := contextutil.GetUserID(ctx); uid != "" {
			if approver, err := uuid.Parse(uid); err == nil {
				e.ApprovedBy = &approver
			}
		}
	}

	if err := qtx.Update(ctx, e); err != nil {
		return TimeEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("time entry reviewed",
		zap.String("entry_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*e), nil
}

func ptrTime(t time.Time) *time.Time { return &t }

func mapToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:              e.ID.String(),
		EmployeeID:      e.EmployeeID.String(),
		EntryType:       e.EntryType,
		StartTime:       e.StartTime.Format(time.RFC3339),
		BreakSeconds:    e.BreakSeconds,
		WorkedHours:     e.WorkedHours().StringFixed(2),
		Status:          e.Status,
		Notes:           e.Notes,
		RejectionReason: e.RejectionReason,
	}
	if e.EndTime != nil {
		v := e.EndTime.Format(time.RFC3339)
		resp.EndTime = &v
	}
	return resp
}
