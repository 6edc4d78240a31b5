package workschedule

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-hrpay/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrWorkScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"work schedule not found",
		http.StatusNotFound,
	)
	ErrInvalidThreshold = apperror.New(
		apperror.CodeInvalidInput,
		"thresholds must be positive hour values",
		http.StatusBadRequest,
	)
	ErrScopeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"schedule needs an employee_id or a department_id",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=workschedule_service.go -destination=mock/workschedule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateWorkScheduleRequest) (WorkScheduleResponse, error)
	GetAll(ctx context.Context) ([]WorkScheduleResponse, error)
	GetByID(ctx context.Context, id string) (WorkScheduleResponse, error)
	Delete(ctx context.Context, id string) error
	ResolveForEmployee(ctx context.Context, employeeID string) Resolved
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workschedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workschedule.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateWorkScheduleRequest) (WorkScheduleResponse, error) {
	daily, err := decimal.NewFromString(req.DailyHoursThreshold)
	if err != nil || !daily.IsPositive() || daily.GreaterThan(decimal.NewFromInt(24)) {
		return WorkScheduleResponse{}, ErrInvalidThreshold
	}
	weekly, err := decimal.NewFromString(req.WeeklyHoursThreshold)
	if err != nil || !weekly.IsPositive() || weekly.GreaterThan(decimal.NewFromInt(168)) {
		return WorkScheduleResponse{}, ErrInvalidThreshold
	}
	if req.EmployeeID == nil && req.DepartmentID == nil {
		return WorkScheduleResponse{}, ErrScopeRequired
	}

	ws := &WorkSchedule{
		ID:                   uuid.New(),
		Name:                 req.Name,
		DailyHoursThreshold:  daily,
		WeeklyHoursThreshold: weekly,
	}
	if req.EmployeeID != nil {
		id, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return WorkScheduleResponse{}, apperror.InvalidField("Employee Id")
		}
		ws.EmployeeID = &id
	}
	if req.DepartmentID != nil {
		id, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return WorkScheduleResponse{}, apperror.InvalidField("Department Id")
		}
		ws.DepartmentID = &id
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, ws); err != nil {
		return WorkScheduleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkScheduleResponse{}, err
	}

	return mapToResponse(*ws), nil
}

func (s *service) GetAll(ctx context.Context) ([]WorkScheduleResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]WorkScheduleResponse, len(rows))
	for i, ws := range rows {
		res[i] = mapToResponse(ws)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkScheduleResponse, error) {
	ws, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkScheduleResponse{}, ErrWorkScheduleNotFound
		}
		return WorkScheduleResponse{}, err
	}
	return mapToResponse(*ws), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ResolveForEmployee walks employee schedule, then department schedule, then
// the system default. It never fails: aggregation must not stall because a
// schedule lookup errored, so failures degrade to the default with a warning.
func (s *service) ResolveForEmployee(ctx context.Context, employeeID string) Resolved {
	ws, err := s.repo.FindByEmployee(ctx, employeeID)
	if err == nil {
		return Resolved{
			DailyHoursThreshold:  ws.DailyHoursThreshold,
			WeeklyHoursThreshold: ws.WeeklyHoursThreshold,
			Source:               SourceEmployee,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("employee schedule lookup failed, falling back",
			zap.String("employee_id", employeeID), zap.Error(err))
		return DefaultResolved()
	}

	departmentID, err := s.repo.FindEmployeeDepartment(ctx, employeeID)
	if err != nil {
		s.logger.Warn("employee department lookup failed, falling back",
			zap.String("employee_id", employeeID), zap.Error(err))
		return DefaultResolved()
	}
	if departmentID == nil {
		return DefaultResolved()
	}

	ws, err = s.repo.FindByDepartment(ctx, *departmentID)
	if err == nil {
		return Resolved{
			DailyHoursThreshold:  ws.DailyHoursThreshold,
			WeeklyHoursThreshold: ws.WeeklyHoursThreshold,
			Source:               SourceDepartment,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("department schedule lookup failed, falling back",
			zap.String("department_id", *departmentID), zap.Error(err))
	}
	return DefaultResolved()
}

func mapToResponse(ws WorkSchedule) WorkScheduleResponse {
	resp := WorkScheduleResponse{
		ID:                   ws.ID.String(),
		Name:                 ws.Name,
		DailyHoursThreshold:  ws.DailyHoursThreshold.StringFixed(2),
		WeeklyHoursThreshold: ws.WeeklyHoursThreshold.StringFixed(2),
	}
	if ws.EmployeeID != nil {
		v := ws.EmployeeID.String()
		resp.EmployeeID = &v
	}
	if ws.DepartmentID != nil {
		v := ws.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}
