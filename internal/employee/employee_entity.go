package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber   string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_number"`
	FullName         string          `gorm:"type:varchar(255);not null"`
	Email            string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Phone            *string         `gorm:"type:varchar(30)"`
	DepartmentID     *uuid.UUID      `gorm:"type:uuid;index"`
	BaseSalary       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	EmploymentStatus string          `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	HireDate         time.Time       `gorm:"type:date;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}

func IsValidEmploymentStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusTerminated:
		return true
	}
	return false
}
