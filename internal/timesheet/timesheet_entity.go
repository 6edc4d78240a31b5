package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusPaid      = "PAID"
)

// Timesheet is the weekly rollup of an employee's completed time entries.
// One row per employee per week, keyed by the Monday the week starts on.
type Timesheet struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_timesheet_employee_week"`
	WeekStart     time.Time       `gorm:"type:date;not null;uniqueIndex:uq_timesheet_employee_week"`
	WeekEnd       time.Time       `gorm:"type:date;not null"`
	RegularHours  decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	BreakHours    decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	TotalHours    decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	EntryCount    int             `gorm:"not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Timesheet) TableName() string {
	return "timesheets"
}
