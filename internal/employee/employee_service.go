package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-hrpay/internal/employee/errors"
	"go-hrpay/internal/events"
	"go-hrpay/internal/messaging/kafka"
	"go-hrpay/internal/shared/contextutil"
	"go-hrpay/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	employeeOptionsCacheKey = "employee:options"
	employeeOptionsCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}

type service struct {
	db          *sql.DB
	repo        Repository
	counterRepo counter.Repository
	outboxRepo  kafka.OutboxRepository
	redisClient *redis.Client
	group       singleflight.Group
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	redisClient *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
		redisClient: redisClient,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	baseSalary, err := decimal.NewFromString(req.BaseSalary)
	if err != nil || !baseSalary.IsPositive() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidBaseSalary
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	exists, err := s.repo.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !exists {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	employeeNumber := req.EmployeeNumber
	if employeeNumber == "" {
		seq, err := s.counterRepo.GetNextValue(ctx, "global", "employee_number")
		if err != nil {
			return EmployeeResponse{}, err
		}
		employeeNumber = fmt.Sprintf("EMP-%06d", seq)
	}

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Employee{
		ID:               uuid.New(),
		EmployeeNumber:   employeeNumber,
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		DepartmentID:     &departmentID,
		BaseSalary:       baseSalary,
		EmploymentStatus: StatusActive,
		HireDate:         hireDate,
	}

	if err := qtx.Create(ctx, e); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueCreatedEvent(ctx, tx, e); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("employee_number", e.EmployeeNumber),
	)

	return mapToResponse(*e), nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, e *Employee) error {
	payload, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:  "employee.created",
		EmployeeID: e.ID.String(),
		BaseSalary: e.BaseSalary.StringFixed(2),
		HireDate:   e.HireDate.Format("2006-01-02"),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   e.ID.String(),
		EventType:     "employee.created",
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

// GetOptions serves the lightweight picker list used by clients. Reads go
// through redis with singleflight collapsing concurrent cache misses.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, employeeOptionsCacheKey).Bytes()
		if err == nil {
			var opts []EmployeeOption
			if err := json.Unmarshal(cached, &opts); err == nil {
				return opts, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("employee options cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(employeeOptionsCacheKey, func() (any, error) {
		rows, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		opts := make([]EmployeeOption, len(rows))
		for i, e := range rows {
			opts[i] = EmployeeOption{
				ID:             e.ID.String(),
				EmployeeNumber: e.EmployeeNumber,
				FullName:       e.FullName,
			}
		}

		if s.redisClient != nil {
			if data, err := json.Marshal(opts); err == nil {
				if err := s.redisClient.Set(ctx, employeeOptionsCacheKey, data, employeeOptionsCacheTTL).Err(); err != nil {
					s.logger.Warn("employee options cache write failed", zap.Error(err))
				}
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if !IsValidEmploymentStatus(req.EmploymentStatus) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmploymentStatus
	}

	exists, err := s.repo.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !exists {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Base salary changes go through the compensation ledger, not here.
	e.FullName = req.FullName
	e.Email = req.Email
	e.Phone = req.Phone
	e.DepartmentID = &departmentID
	e.EmploymentStatus = req.EmploymentStatus

	if err := qtx.Update(ctx, e); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, employeeOptionsCacheKey).Err(); err != nil {
		s.logger.Warn("employee options cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	res := EmployeeResponse{
		ID:               e.ID.String(),
		EmployeeNumber:   e.EmployeeNumber,
		FullName:         e.FullName,
		Email:            e.Email,
		Phone:            e.Phone,
		BaseSalary:       e.BaseSalary.StringFixed(2),
		EmploymentStatus: e.EmploymentStatus,
		HireDate:         e.HireDate.Format("2006-01-02"),
	}
	if e.DepartmentID != nil {
		res.DepartmentID = e.DepartmentID.String()
	}
	if e.Department != nil {
		res.DepartmentName = e.Department.Name
	}
	return res
}
