package paycomponent

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=paycomponent_repo.go -destination=mock/paycomponent_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateDeductionType(ctx context.Context, dt *DeductionType) error
	FindAllDeductionTypes(ctx context.Context) ([]DeductionType, error)
	FindDeductionTypeByID(ctx context.Context, id string) (*DeductionType, error)
	FindMandatoryActiveDeductionTypes(ctx context.Context) ([]DeductionType, error)
	UpdateDeductionType(ctx context.Context, dt *DeductionType) error
	DeleteDeductionType(ctx context.Context, id string) error
	CreateBonusType(ctx context.Context, bt *BonusType) error
	FindAllBonusTypes(ctx context.Context) ([]BonusType, error)
	FindBonusTypeByID(ctx context.Context, id string) (*BonusType, error)
	DeleteBonusType(ctx context.Context, id string) error
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

func (r *repository) CreateDeductionType(ctx context.Context, dt *DeductionType) error {
	return r.db.WithContext(ctx).Create(dt).Error
}

func (r *repository) FindAllDeductionTypes(ctx context.Context) ([]DeductionType, error) {
	var rows []DeductionType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindDeductionTypeByID(ctx context.Context, id string) (*DeductionType, error) {
	var dt DeductionType
	if err := r.db.WithContext(ctx).First(&dt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dt, nil
}

func (r *repository) FindMandatoryActiveDeductionTypes(ctx context.Context) ([]DeductionType, error) {
	var rows []DeductionType
	err := r.db.WithContext(ctx).
		Where("is_mandatory = ? AND is_active = ?", true, true).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateDeductionType(ctx context.Context, dt *DeductionType) error {
	return r.db.WithContext(ctx).Save(dt).Error
}

func (r *repository) DeleteDeductionType(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&DeductionType{}, "id = ?", id).Error
}

func (r *repository) CreateBonusType(ctx context.Context, bt *BonusType) error {
	return r.db.WithContext(ctx).Create(bt).Error
}

func (r *repository) FindAllBonusTypes(ctx context.Context) ([]BonusType, error) {
	var rows []BonusType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindBonusTypeByID(ctx context.Context, id string) (*BonusType, error) {
	var bt BonusType
	if err := r.db.WithContext(ctx).First(&bt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *repository) DeleteBonusType(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&BonusType{}, "id = ?", id).Error
}
