package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeAnnual    = "ANNUAL"
	TypeSick      = "SICK"
	TypeUnpaid    = "UNPAID"
	TypeMaternity = "MATERNITY"
	TypePersonal  = "PERSONAL"
)

type Leave struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveType       string    `gorm:"type:varchar(20);not null"`
	IsPaid          bool      `gorm:"not null;default:true"`
	StartDate       time.Time `gorm:"type:date;not null"`
	EndDate         time.Time `gorm:"type:date;not null"`
	TotalDays       int       `gorm:"not null"`
	Reason          string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedBy      *uuid.UUID
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedBy       *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func IsValidLeaveType(t string) bool {
	switch t {
	case TypeAnnual, TypeSick, TypeUnpaid, TypeMaternity, TypePersonal:
		return true
	}
	return false
}
