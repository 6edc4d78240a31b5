package workschedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkSchedule overrides the overtime thresholds for a department or a single
// employee. Rows are immutable once created, changes are a delete plus a new
// row so historical aggregation stays reproducible.
type WorkSchedule struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                 string          `gorm:"type:varchar(100);not null"`
	EmployeeID           *uuid.UUID      `gorm:"type:uuid;index"`
	DepartmentID         *uuid.UUID      `gorm:"type:uuid;index"`
	DailyHoursThreshold  decimal.Decimal `gorm:"type:decimal(4,2);not null"`
	WeeklyHoursThreshold decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}

// Resolved carries the thresholds the aggregator actually applies.
type Resolved struct {
	DailyHoursThreshold  decimal.Decimal
	WeeklyHoursThreshold decimal.Decimal
	Source               string
}

const (
	SourceEmployee   = "employee"
	SourceDepartment = "department"
	SourceDefault    = "default"
)

// System defaults when no schedule matches: an 8 hour day, 40 hour week.
func DefaultResolved() Resolved {
	return Resolved{
		DailyHoursThreshold:  decimal.NewFromInt(8),
		WeeklyHoursThreshold: decimal.NewFromInt(40),
		Source:               SourceDefault,
	}
}
