package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hrpay/internal/employee"
	payrollerrors "go-hrpay/internal/payroll/errors"
	"go-hrpay/internal/payslip"
	paysliperrors "go-hrpay/internal/payslip/errors"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetAll(ctx context.Context) ([]PeriodResponse, error)
	GetByID(ctx context.Context, id string) (PeriodResponse, error)
	Process(ctx context.Context, id string) (ProcessResultResponse, error)
	Finalize(ctx context.Context, id string) (PeriodResponse, error)
	Cancel(ctx context.Context, id string) (PeriodResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	payslipRepo  payslip.Repository
	payslipSvc   payslip.Service
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	payslipRepo payslip.Repository,
	payslipSvc payslip.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		payslipRepo:  payslipRepo,
		payslipSvc:   payslipSvc,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return PeriodResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return PeriodResponse{}, err
	}
	payDate, err := parseDate(req.PayDate)
	if err != nil {
		return PeriodResponse{}, err
	}
	if start.After(end) {
		return PeriodResponse{}, payrollerrors.ErrInvalidDateRange
	}
	if !IsValidFrequency(req.Frequency) {
		return PeriodResponse{}, payrollerrors.ErrInvalidFrequency
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, start, end)
	if err != nil {
		return PeriodResponse{}, err
	}
	if overlap {
		return PeriodResponse{}, payrollerrors.ErrOverlappingPeriod
	}

	p := &PayrollPeriod{
		ID:        uuid.New(),
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		PayDate:   payDate,
		Frequency: req.Frequency,
		Status:    StatusDraft,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, p); err != nil {
		return PeriodResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	s.logger.Info("payroll period created",
		zap.String("period_id", p.ID.String()),
		zap.String("name", p.Name),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PeriodResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]PeriodResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PeriodResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PeriodResponse{}, mapPeriodError(err)
	}
	return mapToResponse(*p), nil
}

// Process batch-creates draft payslips for every active employee not yet
// covered by the period. One employee failing does not abort the batch; the
// period still advances to PROCESSED and the created count is returned.
// Running it again is safe: existing payslips are skipped.
func (s *service) Process(ctx context.Context, id string) (ProcessResultResponse, error) {
	p, err := s.transition(ctx, id, StatusProcessing, func(status string) bool {
		return status == StatusDraft || status == StatusProcessed
	})
	if err != nil {
		return ProcessResultResponse{}, err
	}

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		return ProcessResultResponse{}, err
	}

	created, failed := 0, 0
	for _, e := range employees {
		_, err := s.payslipSvc.CreateDraft(ctx, e.ID, p.ID, e.BaseSalary, p.StartDate)
		if err != nil {
			if errors.Is(err, paysliperrors.ErrPayslipAlreadyExists) {
				continue
			}
			failed++
			s.logger.Warn("draft payslip creation failed, skipping employee",
				zap.String("period_id", p.ID.String()),
				zap.String("employee_id", e.ID.String()),
				zap.Error(err),
			)
			continue
		}
		created++
	}

	p, err = s.transition(ctx, id, StatusProcessed, func(status string) bool {
		return status == StatusProcessing
	})
	if err != nil {
		return ProcessResultResponse{}, err
	}

	s.logger.Info("payroll period processed",
		zap.String("period_id", p.ID.String()),
		zap.Int("payslips_created", created),
		zap.Int("employees_failed", failed),
	)

	return ProcessResultResponse{
		Period:          mapToResponse(*p),
		PayslipsCreated: created,
		EmployeesFailed: failed,
	}, nil
}

// Finalize closes the period: every payslip must be approved, and the
// period's running totals are refreshed from them.
func (s *service) Finalize(ctx context.Context, id string) (PeriodResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPeriod(ctx, id)
	if err != nil {
		return PeriodResponse{}, mapPeriodError(err)
	}
	if status != StatusProcessed {
		return PeriodResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PeriodResponse{}, mapPeriodError(err)
	}

	payslips, err := s.payslipRepo.FindByPeriod(ctx, id)
	if err != nil {
		return PeriodResponse{}, err
	}

	totalGross, totalNet := decimal.Zero, decimal.Zero
	totalTax, totalDeductions := decimal.Zero, decimal.Zero
	counted := 0
	for _, ps := range payslips {
		if ps.Status == payslip.StatusCancelled {
			continue
		}
		if ps.Status != payslip.StatusApproved {
			return PeriodResponse{}, payrollerrors.ErrUnapprovedPayslips
		}
		totalGross = totalGross.Add(ps.GrossSalary)
		totalNet = totalNet.Add(ps.NetSalary)
		totalTax = totalTax.Add(ps.TaxAmount)
		totalDeductions = totalDeductions.Add(ps.TotalDeductions)
		counted++
	}

	p.Status = StatusFinalized
	p.TotalGross = totalGross
	p.TotalNet = totalNet
	p.TotalTax = totalTax
	p.TotalDeductions = totalDeductions
	// Cancelled payslips are excluded from the totals, so they stay out of
	// the count as well.
	p.PayslipCount = counted

	if err := qtx.Update(ctx, p); err != nil {
		return PeriodResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	s.logger.Info("payroll period finalized",
		zap.String("period_id", p.ID.String()),
		zap.String("total_net", p.TotalNet.StringFixed(2)),
	)
	return mapToResponse(*p), nil
}

func (s *service) Cancel(ctx context.Context, id string) (PeriodResponse, error) {
	p, err := s.transition(ctx, id, StatusCancelled, func(status string) bool {
		return status != StatusFinalized && status != StatusCancelled
	})
	if err != nil {
		return PeriodResponse{}, err
	}
	return mapToResponse(*p), nil
}

// transition moves the period to a new status under a row lock, guarded by
// the allowed predicate on the current status.
func (s *service) transition(ctx context.Context, id, to string, allowed func(string) bool) (*PayrollPeriod, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPeriod(ctx, id)
	if err != nil {
		return nil, mapPeriodError(err)
	}
	if !allowed(status) {
		return nil, payrollerrors.ErrInvalidStatusTransition
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapPeriodError(err)
	}

	p.Status = to
	if err := qtx.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapPeriodError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return payrollerrors.ErrPeriodNotFound
	}
	return err
}

func mapToResponse(p PayrollPeriod) PeriodResponse {
	return PeriodResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		StartDate:       p.StartDate.Format("2006-01-02"),
		EndDate:         p.EndDate.Format("2006-01-02"),
		PayDate:         p.PayDate.Format("2006-01-02"),
		Frequency:       p.Frequency,
		Status:          p.Status,
		TotalGross:      p.TotalGross.StringFixed(2),
		TotalNet:        p.TotalNet.StringFixed(2),
		TotalTax:        p.TotalTax.StringFixed(2),
		TotalDeductions: p.TotalDeductions.StringFixed(2),
		PayslipCount:    p.PayslipCount,
	}
}
