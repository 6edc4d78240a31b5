package payrollconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-hrpay/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	configCacheKey = "payrollconfig:current"
	configCacheTTL = 10 * time.Minute
)

var ErrInvalidConfigValue = apperror.New(
	apperror.CodeInvalidInput,
	"configuration values must be positive",
	http.StatusBadRequest,
)

//go:generate mockgen -source=payrollconfig_service.go -destination=mock/payrollconfig_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (PayrollConfiguration, error)
	GetResponse(ctx context.Context) (PayrollConfigResponse, error)
	Update(ctx context.Context, req UpdatePayrollConfigRequest) (PayrollConfigResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	redisClient *redis.Client
	group       singleflight.Group
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, redisClient *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrollconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollconfig.service")
	}
	return &service{db: db, repo: repo, redisClient: redisClient, logger: l}
}

// Get returns the current configuration, falling back to Defaults() when none
// has been saved yet. Every payslip calculation reads this, so it is cached.
func (s *service) Get(ctx context.Context) (PayrollConfiguration, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, configCacheKey).Bytes()
		if err == nil {
			var cfg PayrollConfiguration
			if err := json.Unmarshal(cached, &cfg); err == nil {
				return cfg, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("payroll config cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(configCacheKey, func() (any, error) {
		cfg, err := s.repo.Get(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				defaults := Defaults()
				return defaults, nil
			}
			return PayrollConfiguration{}, err
		}

		if s.redisClient != nil {
			if data, err := json.Marshal(cfg); err == nil {
				if err := s.redisClient.Set(ctx, configCacheKey, data, configCacheTTL).Err(); err != nil {
					s.logger.Warn("payroll config cache write failed", zap.Error(err))
				}
			}
		}
		return *cfg, nil
	})
	if err != nil {
		return PayrollConfiguration{}, err
	}
	return v.(PayrollConfiguration), nil
}

func (s *service) GetResponse(ctx context.Context) (PayrollConfigResponse, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return PayrollConfigResponse{}, err
	}
	return mapToResponse(cfg), nil
}

func (s *service) Update(ctx context.Context, req UpdatePayrollConfigRequest) (PayrollConfigResponse, error) {
	hoursPerDay, err := decimal.NewFromString(req.WorkingHoursPerDay)
	if err != nil || !hoursPerDay.IsPositive() || hoursPerDay.GreaterThan(decimal.NewFromInt(24)) {
		return PayrollConfigResponse{}, ErrInvalidConfigValue
	}
	overtimeThreshold, err := decimal.NewFromString(req.OvertimeThresholdHours)
	if err != nil || !overtimeThreshold.IsPositive() || overtimeThreshold.GreaterThan(decimal.NewFromInt(24)) {
		return PayrollConfigResponse{}, ErrInvalidConfigValue
	}
	overtimeRate, err := decimal.NewFromString(req.DefaultOvertimeRate)
	if err != nil || overtimeRate.LessThan(decimal.NewFromInt(1)) {
		return PayrollConfigResponse{}, ErrInvalidConfigValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.Get(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollConfigResponse{}, err
	}

	cfg := &PayrollConfiguration{
		ID:                     uuid.New(),
		WorkingDaysPerMonth:    req.WorkingDaysPerMonth,
		WorkingHoursPerDay:     hoursPerDay,
		OvertimeThresholdHours: overtimeThreshold,
		DefaultOvertimeRate:    overtimeRate,
		DefaultCountry:         req.DefaultCountry,
		TaxYear:                req.TaxYear,
		PayslipNumberPrefix:    req.PayslipNumberPrefix,
	}
	if existing != nil {
		cfg.ID = existing.ID
	}

	if err := qtx.Save(ctx, cfg); err != nil {
		return PayrollConfigResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollConfigResponse{}, err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Del(ctx, configCacheKey).Err(); err != nil {
			s.logger.Warn("payroll config cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("payroll configuration updated",
		zap.Int("working_days_per_month", cfg.WorkingDaysPerMonth),
		zap.Int("tax_year", cfg.TaxYear),
	)
	return mapToResponse(*cfg), nil
}

func mapToResponse(cfg PayrollConfiguration) PayrollConfigResponse {
	return PayrollConfigResponse{
		WorkingDaysPerMonth:    cfg.WorkingDaysPerMonth,
		WorkingHoursPerDay:     cfg.WorkingHoursPerDay.StringFixed(2),
		OvertimeThresholdHours: cfg.OvertimeThresholdHours.StringFixed(2),
		DefaultOvertimeRate:    cfg.DefaultOvertimeRate.StringFixed(2),
		DefaultCountry:         cfg.DefaultCountry,
		TaxYear:                cfg.TaxYear,
		PayslipNumberPrefix:    cfg.PayslipNumberPrefix,
	}
}
