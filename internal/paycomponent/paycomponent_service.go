package paycomponent

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	paycomponenterrors "go-hrpay/internal/paycomponent/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=paycomponent_service.go -destination=mock/paycomponent_service_mock.go -package=mock
type Service interface {
	CreateDeductionType(ctx context.Context, req CreateDeductionTypeRequest) (DeductionTypeResponse, error)
	GetDeductionTypes(ctx context.Context) ([]DeductionTypeResponse, error)
	GetDeductionTypeByID(ctx context.Context, id string) (DeductionTypeResponse, error)
	UpdateDeductionType(ctx context.Context, id string, req UpdateDeductionTypeRequest) (DeductionTypeResponse, error)
	DeleteDeductionType(ctx context.Context, id string) error
	CreateBonusType(ctx context.Context, req CreateBonusTypeRequest) (BonusTypeResponse, error)
	GetBonusTypes(ctx context.Context) ([]BonusTypeResponse, error)
	DeleteBonusType(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("paycomponent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("paycomponent.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func parseComponentAmount(method, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, paycomponenterrors.ErrInvalidAmount
	}
	if method == MethodPercentage && amount.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Decimal{}, paycomponenterrors.ErrInvalidPercentage
	}
	return amount, nil
}

func (s *service) CreateDeductionType(ctx context.Context, req CreateDeductionTypeRequest) (DeductionTypeResponse, error) {
	amount, err := parseComponentAmount(req.Method, req.Amount)
	if err != nil {
		return DeductionTypeResponse{}, err
	}

	dt := &DeductionType{
		ID:          uuid.New(),
		Name:        req.Name,
		Method:      req.Method,
		Amount:      amount,
		IsMandatory: req.IsMandatory,
		IsPreTax:    req.IsPreTax,
		IsActive:    true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeductionTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateDeductionType(ctx, dt); err != nil {
		return DeductionTypeResponse{}, mapDeductionTypeError(err)
	}

	if err := tx.Commit(); err != nil {
		return DeductionTypeResponse{}, err
	}

	s.logger.Info("deduction type created",
		zap.String("deduction_type_id", dt.ID.String()),
		zap.String("name", dt.Name),
		zap.Bool("is_mandatory", dt.IsMandatory))

	return mapDeductionTypeToResponse(*dt), nil
}

func (s *service) GetDeductionTypes(ctx context.Context) ([]DeductionTypeResponse, error) {
	rows, err := s.repo.FindAllDeductionTypes(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]DeductionTypeResponse, len(rows))
	for i, dt := range rows {
		res[i] = mapDeductionTypeToResponse(dt)
	}
	return res, nil
}

func (s *service) GetDeductionTypeByID(ctx context.Context, id string) (DeductionTypeResponse, error) {
	dt, err := s.repo.FindDeductionTypeByID(ctx, id)
	if err != nil {
		return DeductionTypeResponse{}, mapDeductionTypeError(err)
	}
	return mapDeductionTypeToResponse(*dt), nil
}

func (s *service) UpdateDeductionType(ctx context.Context, id string, req UpdateDeductionTypeRequest) (DeductionTypeResponse, error) {
	amount, err := parseComponentAmount(req.Method, req.Amount)
	if err != nil {
		return DeductionTypeResponse{}, err
	}

	dt, err := s.repo.FindDeductionTypeByID(ctx, id)
	if err != nil {
		return DeductionTypeResponse{}, mapDeductionTypeError(err)
	}

	dt.Name = req.Name
	dt.Method = req.Method
	dt.Amount = amount
	dt.IsMandatory = req.IsMandatory
	dt.IsPreTax = req.IsPreTax
	dt.IsActive = req.IsActive

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeductionTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateDeductionType(ctx, dt); err != nil {
		return DeductionTypeResponse{}, mapDeductionTypeError(err)
	}

	if err := tx.Commit(); err != nil {
		return DeductionTypeResponse{}, err
	}

	return mapDeductionTypeToResponse(*dt), nil
}

func (s *service) DeleteDeductionType(ctx context.Context, id string) error {
	if _, err := s.repo.FindDeductionTypeByID(ctx, id); err != nil {
		return mapDeductionTypeError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteDeductionType(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) CreateBonusType(ctx context.Context, req CreateBonusTypeRequest) (BonusTypeResponse, error) {
	amount, err := parseComponentAmount(req.Method, req.DefaultAmount)
	if err != nil {
		return BonusTypeResponse{}, err
	}

	taxable := true
	if req.IsTaxable != nil {
		taxable = *req.IsTaxable
	}

	bt := &BonusType{
		ID:            uuid.New(),
		Name:          req.Name,
		Method:        req.Method,
		DefaultAmount: amount,
		IsTaxable:     taxable,
		IsActive:      true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BonusTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateBonusType(ctx, bt); err != nil {
		return BonusTypeResponse{}, mapBonusTypeError(err)
	}

	if err := tx.Commit(); err != nil {
		return BonusTypeResponse{}, err
	}

	return mapBonusTypeToResponse(*bt), nil
}

func (s *service) GetBonusTypes(ctx context.Context) ([]BonusTypeResponse, error) {
	rows, err := s.repo.FindAllBonusTypes(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]BonusTypeResponse, len(rows))
	for i, bt := range rows {
		res[i] = mapBonusTypeToResponse(bt)
	}
	return res, nil
}

func (s *service) DeleteBonusType(ctx context.Context, id string) error {
	if _, err := s.repo.FindBonusTypeByID(ctx, id); err != nil {
		return mapBonusTypeError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteBonusType(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapDeductionTypeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paycomponenterrors.ErrDeductionTypeNotFound
	}
	if isUniqueViolation(err, "uq_deduction_type_name") {
		return paycomponenterrors.ErrDuplicateDeductionTypeName
	}
	return err
}

func mapBonusTypeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paycomponenterrors.ErrBonusTypeNotFound
	}
	if isUniqueViolation(err, "uq_bonus_type_name") {
		return paycomponenterrors.ErrDuplicateBonusTypeName
	}
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, constraint)
}

func mapDeductionTypeToResponse(dt DeductionType) DeductionTypeResponse {
	return DeductionTypeResponse{
		ID:          dt.ID.String(),
		Name:        dt.Name,
		Method:      dt.Method,
		Amount:      dt.Amount.StringFixed(2),
		IsMandatory: dt.IsMandatory,
		IsPreTax:    dt.IsPreTax,
		IsActive:    dt.IsActive,
	}
}

func mapBonusTypeToResponse(bt BonusType) BonusTypeResponse {
	return BonusTypeResponse{
		ID:            bt.ID.String(),
		Name:          bt.Name,
		Method:        bt.Method,
		DefaultAmount: bt.DefaultAmount.StringFixed(2),
		IsTaxable:     bt.IsTaxable,
		IsActive:      bt.IsActive,
	}
}
