package compensation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	compensationerrors "go-hrpay/internal/compensation/errors"
	"go-hrpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	Append(ctx context.Context, employeeID string, req AppendCompensationRequest) (CompensationResponse, error)
	RecordHire(ctx context.Context, employeeID string, baseSalary decimal.Decimal, hireDate time.Time) error
	GetByEmployee(ctx context.Context, employeeID string) ([]CompensationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("compensation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, logger: l}
}

// Append writes a new ledger entry and, for salary-affecting change types,
// rewrites the employee's current base salary in the same transaction.
func (s *service) Append(ctx context.Context, employeeID string, req AppendCompensationRequest) (CompensationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return CompensationResponse{}, compensationerrors.ErrEmployeeNotFound
	}
	if !IsValidChangeType(req.ChangeType) {
		return CompensationResponse{}, compensationerrors.ErrInvalidChangeType
	}

	newSalary, err := decimal.NewFromString(req.NewSalary)
	if err != nil || !newSalary.IsPositive() {
		return CompensationResponse{}, compensationerrors.ErrInvalidNewSalary
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return CompensationResponse{}, compensationerrors.ErrInvalidEffectiveDate
	}

	var createdBy *string
	if uid := contextutil.GetUserID(ctx); uid != "" {
		createdBy = &uid
	}

	entry, err := s.appendEntry(ctx, appendParams{
		employeeID:    employeeID,
		changeType:    req.ChangeType,
		newSalary:     newSalary,
		effectiveDate: effectiveDate,
		reason:        req.Reason,
		createdBy:     createdBy,
	})
	if err != nil {
		return CompensationResponse{}, err
	}

	s.logger.Info("compensation recorded",
		zap.String("employee_id", employeeID),
		zap.String("change_type", req.ChangeType),
		zap.String("new_salary", newSalary.StringFixed(2)),
	)

	return mapToResponse(*entry), nil
}

// RecordHire seeds the ledger with the opening HIRE entry. Called from the
// employee lifecycle consumer, so it must be idempotent against redelivery.
func (s *service) RecordHire(ctx context.Context, employeeID string, baseSalary decimal.Decimal, hireDate time.Time) error {
	existing, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	for _, h := range existing {
		if h.ChangeType == ChangeTypeHire {
			s.logger.Debug("hire entry already recorded, skipping",
				zap.String("employee_id", employeeID))
			return nil
		}
	}

	_, err = s.appendEntry(ctx, appendParams{
		employeeID:    employeeID,
		changeType:    ChangeTypeHire,
		newSalary:     baseSalary,
		effectiveDate: hireDate,
	})
	return err
}

type appendParams struct {
	employeeID    string
	changeType    string
	newSalary     decimal.Decimal
	effectiveDate time.Time
	reason        *string
	createdBy     *string
}

func (s *service) appendEntry(ctx context.Context, p appendParams) (*CompensationHistory, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	previous, err := qtx.LockEmployeeSalary(ctx, p.employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, compensationerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if p.changeType == ChangeTypeHire {
		// Opening entry, there is no prior salary to carry over.
		previous = decimal.Zero
	}

	entry := &CompensationHistory{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(p.employeeID),
		ChangeType:     p.changeType,
		PreviousSalary: previous,
		NewSalary:      p.newSalary,
		EffectiveDate:  p.effectiveDate,
		Reason:         p.reason,
		CreatedBy:      p.createdBy,
	}

	if err := qtx.Create(ctx, entry); err != nil {
		return nil, err
	}

	if AdjustsBaseSalary(p.changeType) {
		if err := qtx.UpdateEmployeeSalary(ctx, p.employeeID, p.newSalary); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]CompensationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, compensationerrors.ErrEmployeeNotFound
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]CompensationResponse, len(rows))
	for i, h := range rows {
		res[i] = mapToResponse(h)
	}
	return res, nil
}

func mapToResponse(h CompensationHistory) CompensationResponse {
	return CompensationResponse{
		ID:             h.ID.String(),
		EmployeeID:     h.EmployeeID.String(),
		ChangeType:     h.ChangeType,
		PreviousSalary: h.PreviousSalary.StringFixed(2),
		NewSalary:      h.NewSalary.StringFixed(2),
		EffectiveDate:  h.EffectiveDate.Format("2006-01-02"),
		Reason:         h.Reason,
		CreatedBy:      h.CreatedBy,
		CreatedAt:      h.CreatedAt.Format(time.RFC3339),
	}
}
