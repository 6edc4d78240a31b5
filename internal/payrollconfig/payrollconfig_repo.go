package payrollconfig

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payrollconfig_repo.go -destination=mock/payrollconfig_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Get(ctx context.Context) (*PayrollConfiguration, error)
	Save(ctx context.Context, cfg *PayrollConfiguration) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Get(ctx context.Context) (*PayrollConfiguration, error) {
	var cfg PayrollConfiguration
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) Save(ctx context.Context, cfg *PayrollConfiguration) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(cfg).Error
}
