package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hrpay/internal/events"
	"go-hrpay/internal/leave"
	"go-hrpay/internal/messaging/kafka"
	"go-hrpay/internal/paycomponent"
	paycomponenterrors "go-hrpay/internal/paycomponent/errors"
	"go-hrpay/internal/payrollconfig"
	paysliperrors "go-hrpay/internal/payslip/errors"
	"go-hrpay/internal/shared/contextutil"
	"go-hrpay/internal/shared/counter"
	"go-hrpay/internal/tax"
	"go-hrpay/internal/timesheet"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	CreateDraft(ctx context.Context, employeeID, periodID uuid.UUID, baseSalary decimal.Decimal, periodStart time.Time) (*Payslip, error)
	Calculate(ctx context.Context, id string) (PayslipResponse, error)
	Approve(ctx context.Context, id, approverID string) (PayslipResponse, error)
	MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (PayslipResponse, error)
	Cancel(ctx context.Context, id string) (PayslipResponse, error)
	AddDeduction(ctx context.Context, id string, req AddDeductionRequest) (PayslipResponse, error)
	AddBonus(ctx context.Context, id string, req AddBonusRequest) (PayslipResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	GetByPeriod(ctx context.Context, periodID string) ([]PayslipResponse, error)
	GetBreakdown(ctx context.Context, id string) (BreakdownResponse, error)
	Download(ctx context.Context, id string) ([]byte, string, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	timesheetRepo timesheet.Repository
	leaveRepo     leave.Repository
	componentRepo paycomponent.Repository
	counterRepo   counter.Repository
	outboxRepo    kafka.OutboxRepository
	configSvc     payrollconfig.Service
	taxSvc        tax.Service
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	timesheetRepo timesheet.Repository,
	leaveRepo leave.Repository,
	componentRepo paycomponent.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	configSvc payrollconfig.Service,
	taxSvc tax.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		timesheetRepo: timesheetRepo,
		leaveRepo:     leaveRepo,
		componentRepo: componentRepo,
		counterRepo:   counterRepo,
		outboxRepo:    outboxRepo,
		configSvc:     configSvc,
		taxSvc:        taxSvc,
		logger:        l,
	}
}

// CreateDraft seeds a draft payslip for the period processor. The payslip
// number is prefix + period year/month + a sequence scoped to the period.
func (s *service) CreateDraft(ctx context.Context, employeeID, periodID uuid.UUID, baseSalary decimal.Decimal, periodStart time.Time) (*Payslip, error) {
	if !baseSalary.IsPositive() {
		return nil, paysliperrors.ErrInvalidBaseSalary
	}

	if _, err := s.repo.FindByEmployeeAndPeriod(ctx, employeeID.String(), periodID.String()); err == nil {
		return nil, paysliperrors.ErrPayslipAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	seq, err := s.counterRepo.GetNextValue(ctx, periodID.String(), "payslip_number")
	if err != nil {
		return nil, err
	}

	p := &Payslip{
		ID:            uuid.New(),
		PayslipNumber: fmt.Sprintf("%s%d%02d%04d", cfg.PayslipNumberPrefix, periodStart.Year(), int(periodStart.Month()), seq),
		EmployeeID:    employeeID,
		PeriodID:      periodID,
		BaseSalary:    baseSalary,
		OvertimeRate:  cfg.DefaultOvertimeRate,
		Status:        StatusDraft,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Calculate(ctx context.Context, id string) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}
	if status != StatusDraft && status != StatusCalculated {
		return PayslipResponse{}, paysliperrors.ErrInvalidStatusTransition
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}

	if err := s.recompute(ctx, tx, p, nil, nil); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("payslip calculated",
		zap.String("payslip_id", p.ID.String()),
		zap.String("gross", p.GrossSalary.StringFixed(2)),
		zap.String("net", p.NetSalary.StringFixed(2)),
	)

	return mapToResponse(*p), nil
}

// recompute runs the full calculation pipeline inside the caller's
// transaction: hours, unpaid leave, gross, mandatory deductions, tax, net.
// Repeating it on unchanged inputs yields identical figures.
//
// Line items inserted earlier in the same transaction are not yet visible
// to the read connection, so callers pass them in explicitly.
func (s *service) recompute(ctx context.Context, tx *sql.Tx, p *Payslip, uncommittedDeductions []PayslipDeduction, uncommittedBonuses []PayslipBonus) error {
	qtx := s.repo.WithTx(tx)

	periodStart, periodEnd, err := s.repo.FindPeriodRange(ctx, p.PeriodID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return paysliperrors.ErrPeriodNotFound
		}
		return err
	}

	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return err
	}

	sheets, err := s.timesheetRepo.FindApprovedInRange(ctx, p.EmployeeID.String(), periodStart, periodEnd)
	if err != nil {
		return err
	}
	hoursWorked, overtimeHours := decimal.Zero, decimal.Zero
	for _, ts := range sheets {
		hoursWorked = hoursWorked.Add(ts.TotalHours)
		overtimeHours = overtimeHours.Add(ts.OvertimeHours)
	}

	hourlyRate := HourlyRate(p.BaseSalary, cfg.WorkingDaysPerMonth, cfg.WorkingHoursPerDay)
	p.HoursWorked = hoursWorked
	p.OvertimeHours = overtimeHours
	p.OvertimeRate = cfg.DefaultOvertimeRate
	p.OvertimePay = OvertimePay(overtimeHours, hourlyRate, cfg.DefaultOvertimeRate)

	leaves, err := s.leaveRepo.FindApprovedUnpaidOverlapping(ctx, p.EmployeeID.String(), periodStart, periodEnd)
	if err != nil {
		return err
	}
	p.UnpaidLeaveDays = UnpaidLeaveDays(leaves, periodStart, periodEnd)

	dailySalary := decimal.Zero
	if cfg.WorkingDaysPerMonth > 0 {
		dailySalary = p.BaseSalary.Div(decimal.NewFromInt(int64(cfg.WorkingDaysPerMonth)))
	}
	leaveDeduction := dailySalary.Mul(decimal.NewFromInt(int64(p.UnpaidLeaveDays))).Round(2)

	bonuses, err := s.repo.FindBonuses(ctx, p.ID.String())
	if err != nil {
		return err
	}
	bonuses = append(bonuses, uncommittedBonuses...)
	p.TotalBonuses = sumBonuses(bonuses)

	p.GrossSalary = p.BaseSalary.Add(p.OvertimePay).Add(p.TotalBonuses).Sub(leaveDeduction).Round(2)

	mandatory, err := s.componentRepo.FindMandatoryActiveDeductionTypes(ctx)
	if err != nil {
		return err
	}
	existing, err := s.repo.FindDeductions(ctx, p.ID.String())
	if err != nil {
		return err
	}
	existing = append(existing, uncommittedDeductions...)
	missing := MissingMandatoryDeductions(p, existing, mandatory)
	for i := range missing {
		if err := qtx.CreateDeduction(ctx, &missing[i]); err != nil {
			return err
		}
	}
	p.TotalDeductions = sumDeductions(existing).Add(sumDeductions(missing))

	taxRes, err := s.taxSvc.CalculateForGross(ctx, p.GrossSalary)
	if err != nil {
		return err
	}
	p.TaxAmount = taxRes.Tax.Round(2)

	p.NetSalary = p.GrossSalary.Sub(p.TotalDeductions).Sub(p.TaxAmount).Round(2)
	p.Status = StatusCalculated

	if err := qtx.Update(ctx, p); err != nil {
		return err
	}
	return s.enqueueCalculatedEvent(ctx, tx, p)
}

func (s *service) enqueueCalculatedEvent(ctx context.Context, tx *sql.Tx, p *Payslip) error {
	payload, err := json.Marshal(events.PayslipCalculatedEvent{
		EventType:  "payslip.calculated",
		PayslipID:  p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		PeriodID:   p.PeriodID.String(),
		NetSalary:  p.NetSalary.StringFixed(2),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payslip",
		AggregateID:   p.ID.String(),
		EventType:     "payslip.calculated",
		Topic:         events.PayslipCalculatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

func (s *service) Approve(ctx context.Context, id, approverID string) (PayslipResponse, error) {
	approver, err := uuid.Parse(approverID)
	if err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}
	if status != StatusCalculated {
		return PayslipResponse{}, paysliperrors.ErrInvalidStatusTransition
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}

	now := time.Now().UTC()
	p.Status = StatusApproved
	p.ApprovedBy = &approver
	p.ApprovedAt = &now

	if err := qtx.Update(ctx, p); err != nil {
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("payslip approved",
		zap.String("payslip_id", p.ID.String()),
		zap.String("approved_by", approverID),
	)
	return mapToResponse(*p), nil
}

func (s *service) MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (PayslipResponse, error) {
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPaymentDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}
	if status != StatusApproved {
		return PayslipResponse{}, paysliperrors.ErrInvalidStatusTransition
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}

	p.Status = StatusPaid
	p.PaymentMethod = &req.PaymentMethod
	p.PaymentReference = &req.PaymentReference
	p.PaymentDate = &paymentDate

	if err := qtx.Update(ctx, p); err != nil {
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("payslip paid",
		zap.String("payslip_id", p.ID.String()),
		zap.String("payment_reference", req.PaymentReference),
	)
	return mapToResponse(*p), nil
}

func (s *service) Cancel(ctx context.Context, id string) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}
	if status == StatusPaid || status == StatusCancelled {
		return PayslipResponse{}, paysliperrors.ErrInvalidStatusTransition
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}

	p.Status = StatusCancelled

	if err := qtx.Update(ctx, p); err != nil {
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) AddDeduction(ctx context.Context, id string, req AddDeductionRequest) (PayslipResponse, error) {
	override, err := parseOptionalAmount(req.Amount)
	if err != nil {
		return PayslipResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}
	if !lineItemsMutable(status) {
		return PayslipResponse{}, paysliperrors.ErrPayslipImmutable
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}

	dt, err := s.componentRepo.FindDeductionTypeByID(ctx, req.DeductionTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paycomponenterrors.ErrDeductionTypeNotFound
		}
		return PayslipResponse{}, err
	}
	if !dt.IsActive {
		return PayslipResponse{}, paysliperrors.ErrComponentInactive
	}

	amount := componentAmount(dt.Method, dt.Amount, p.BaseSalary)
	if override != nil {
		amount = override.Round(2)
	}

	item := &PayslipDeduction{
		ID:              uuid.New(),
		PayslipID:       p.ID,
		DeductionTypeID: dt.ID,
		Name:            dt.Name,
		Amount:          amount,
		CalculationBase: p.BaseSalary,
	}
	if err := qtx.CreateDeduction(ctx, item); err != nil {
		return PayslipResponse{}, err
	}

	// A calculated payslip must keep its totals consistent with its line
	// items, so the whole pipeline reruns in the same transaction.
	if status == StatusCalculated {
		if err := s.recompute(ctx, tx, p, []PayslipDeduction{*item}, nil); err != nil {
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) AddBonus(ctx context.Context, id string, req AddBonusRequest) (PayslipResponse, error) {
	override, err := parseOptionalAmount(req.Amount)
	if err != nil {
		return PayslipResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	status, err := qtx.LockPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}
	if !lineItemsMutable(status) {
		return PayslipResponse{}, paysliperrors.ErrPayslipImmutable
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}

	bt, err := s.componentRepo.FindBonusTypeByID(ctx, req.BonusTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paycomponenterrors.ErrBonusTypeNotFound
		}
		return PayslipResponse{}, err
	}
	if !bt.IsActive {
		return PayslipResponse{}, paysliperrors.ErrComponentInactive
	}

	amount, err := BonusAmount(*bt, p.BaseSalary, override)
	if err != nil {
		return PayslipResponse{}, err
	}

	item := &PayslipBonus{
		ID:                   uuid.New(),
		PayslipID:            p.ID,
		BonusTypeID:          bt.ID,
		Name:                 bt.Name,
		Amount:               amount,
		CalculationBase:      p.BaseSalary,
		PerformanceReviewRef: req.PerformanceReviewRef,
	}
	if err := qtx.CreateBonus(ctx, item); err != nil {
		return PayslipResponse{}, err
	}

	if status == StatusCalculated {
		if err := s.recompute(ctx, tx, p, nil, []PayslipBonus{*item}); err != nil {
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapPayslipError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) GetByPeriod(ctx context.Context, periodID string) ([]PayslipResponse, error) {
	rows, err := s.repo.FindByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	res := make([]PayslipResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetBreakdown(ctx context.Context, id string) (BreakdownResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BreakdownResponse{}, mapPayslipError(err)
	}
	deductions, err := s.repo.FindDeductions(ctx, id)
	if err != nil {
		return BreakdownResponse{}, err
	}
	bonuses, err := s.repo.FindBonuses(ctx, id)
	if err != nil {
		return BreakdownResponse{}, err
	}
	return BreakdownResponse{
		Payslip:    mapToResponse(*p),
		Deductions: mapDeductionLines(deductions),
		Bonuses:    mapBonusLines(bonuses),
	}, nil
}

func (s *service) Download(ctx context.Context, id string) ([]byte, string, error) {
	breakdown, err := s.GetBreakdown(ctx, id)
	if err != nil {
		return nil, "", err
	}

	doc, err := buildPayslipPDF(breakdown)
	if err != nil {
		return nil, "", err
	}
	return doc, breakdown.Payslip.PayslipNumber + ".pdf", nil
}

func parseOptionalAmount(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	amount, err := decimal.NewFromString(*raw)
	if err != nil || amount.IsNegative() {
		return nil, paysliperrors.ErrInvalidAmount
	}
	return &amount, nil
}

func mapPayslipError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return paysliperrors.ErrPayslipNotFound
	}
	return err
}
