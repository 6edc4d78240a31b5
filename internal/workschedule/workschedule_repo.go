package workschedule

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=workschedule_repo.go -destination=mock/workschedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, ws *WorkSchedule) error
	FindAll(ctx context.Context) ([]WorkSchedule, error)
	FindByID(ctx context.Context, id string) (*WorkSchedule, error)
	FindByEmployee(ctx context.Context, employeeID string) (*WorkSchedule, error)
	FindByDepartment(ctx context.Context, departmentID string) (*WorkSchedule, error)
	FindEmployeeDepartment(ctx context.Context, employeeID string) (*string, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, ws *WorkSchedule) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

func (r *repository) FindAll(ctx context.Context) ([]WorkSchedule, error) {
	var rows []WorkSchedule
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*WorkSchedule, error) {
	var ws WorkSchedule
	err := r.db.WithContext(ctx).First(&ws, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*WorkSchedule, error) {
	var ws WorkSchedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *repository) FindByDepartment(ctx context.Context, departmentID string) (*WorkSchedule, error) {
	var ws WorkSchedule
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("created_at DESC").
		First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *repository) FindEmployeeDepartment(ctx context.Context, employeeID string) (*string, error) {
	var departmentID *string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("department_id::text").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Scan(&departmentID).Error
	if err != nil {
		return nil, err
	}
	return departmentID, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&WorkSchedule{}, "id = ?", id).Error
}
