package tax

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tax_repo.go -destination=mock/tax_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindSchedule(ctx context.Context, country string, taxYear int) ([]TaxBracket, error)
	ReplaceSchedule(ctx context.Context, country string, taxYear int, brackets []TaxBracket) error
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

func (r *repository) FindSchedule(ctx context.Context, country string, taxYear int) ([]TaxBracket, error) {
	var rows []TaxBracket
	err := r.db.WithContext(ctx).
		Where("country = ? AND tax_year = ?", country, taxYear).
		Order("min_amount ASC").
		Find(&rows).Error
	return rows, err
}

// ReplaceSchedule swaps the whole schedule in one transaction. Schedules are
// validated as a unit, partial updates would let invalid intermediate states
// leak into payslip calculations.
func (r *repository) ReplaceSchedule(ctx context.Context, country string, taxYear int, brackets []TaxBracket) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
			return replaceSchedule(ctx, gtx, country, taxYear, brackets)
		})
	}

	_, err := r.tx.ExecContext(ctx,
		`DELETE FROM tax_brackets WHERE country = $1 AND tax_year = $2`, country, taxYear)
	if err != nil {
		return err
	}
	for _, b := range brackets {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO tax_brackets (
				id, country, tax_year, min_amount, max_amount, rate_percent, fixed_amount, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`, b.ID, b.Country, b.TaxYear, b.MinAmount, b.MaxAmount, b.RatePercent, b.FixedAmount)
		if err != nil {
			return err
		}
	}
	return nil
}

func replaceSchedule(ctx context.Context, gtx *gorm.DB, country string, taxYear int, brackets []TaxBracket) error {
	if err := gtx.WithContext(ctx).
		Where("country = ? AND tax_year = ?", country, taxYear).
		Delete(&TaxBracket{}).Error; err != nil {
		return err
	}
	return gtx.WithContext(ctx).Create(&brackets).Error
}
