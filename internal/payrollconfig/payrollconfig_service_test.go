package payrollconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	getFn  func(ctx context.Context) (*PayrollConfiguration, error)
	saveFn func(ctx context.Context, cfg *PayrollConfiguration) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Get(ctx context.Context) (*PayrollConfiguration, error) { return f.getFn(ctx) }

func (f *fakeRepo) Save(ctx context.Context, cfg *PayrollConfiguration) error {
	return f.saveFn(ctx, cfg)
}

func TestGetConfig_FallsBackToDefaults(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		getFn: func(ctx context.Context) (*PayrollConfiguration, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, nil)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 22, cfg.WorkingDaysPerMonth)
	assert.Equal(t, "8.00", cfg.WorkingHoursPerDay.StringFixed(2))
	assert.Equal(t, "1.50", cfg.DefaultOvertimeRate.StringFixed(2))
	assert.Equal(t, "PAY", cfg.PayslipNumberPrefix)
}

func TestGetConfig_ServesFromRedisCache(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	cached := PayrollConfiguration{
		ID:                     uuid.New(),
		WorkingDaysPerMonth:    20,
		WorkingHoursPerDay:     decimal.NewFromInt(7),
		OvertimeThresholdHours: decimal.NewFromInt(7),
		DefaultOvertimeRate:    decimal.RequireFromString("2"),
		DefaultCountry:         "SG",
		TaxYear:                2025,
		PayslipNumberPrefix:    "SLP",
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	redisMock.ExpectGet(configCacheKey).SetVal(string(data))

	repo := &fakeRepo{
		getFn: func(ctx context.Context) (*PayrollConfiguration, error) {
			t.Fatal("repo must not be hit on cache hit")
			return nil, nil
		},
	}

	svc := NewService(db, repo, redisClient)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.WorkingDaysPerMonth)
	assert.Equal(t, "SLP", cfg.PayslipNumberPrefix)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetConfig_CacheMissReadsRepoAndPopulates(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	redisClient, redisMock := redismock.NewClientMock()

	stored := &PayrollConfiguration{
		ID:                     uuid.New(),
		WorkingDaysPerMonth:    22,
		WorkingHoursPerDay:     decimal.NewFromInt(8),
		OvertimeThresholdHours: decimal.NewFromInt(8),
		DefaultOvertimeRate:    decimal.RequireFromString("1.5"),
		DefaultCountry:         "ID",
		TaxYear:                2025,
		PayslipNumberPrefix:    "PAY",
		UpdatedAt:              time.Now().UTC(),
	}
	data, err := json.Marshal(stored)
	require.NoError(t, err)

	redisMock.ExpectGet(configCacheKey).RedisNil()
	redisMock.ExpectSet(configCacheKey, data, configCacheTTL).SetVal("OK")

	repo := &fakeRepo{
		getFn: func(ctx context.Context) (*PayrollConfiguration, error) { return stored, nil },
	}

	svc := NewService(db, repo, redisClient)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored.ID, cfg.ID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestUpdateConfig_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)

	base := UpdatePayrollConfigRequest{
		WorkingDaysPerMonth:    22,
		WorkingHoursPerDay:     "8",
		OvertimeThresholdHours: "8",
		DefaultOvertimeRate:    "1.5",
		DefaultCountry:         "ID",
		TaxYear:                2025,
		PayslipNumberPrefix:    "PAY",
	}

	req := base
	req.WorkingHoursPerDay = "25"
	_, err = svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidConfigValue)

	req = base
	req.DefaultOvertimeRate = "0.5"
	_, err = svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidConfigValue)
}
