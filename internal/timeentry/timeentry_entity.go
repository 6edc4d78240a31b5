package timeentry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeRegular  = "REGULAR"
	TypeOvertime = "OVERTIME"
	TypeBreak    = "BREAK"
	TypePersonal = "PERSONAL"
)

const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

type TimeEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index"`
	EntryType       string    `gorm:"type:varchar(20);not null;default:'REGULAR'"`
	StartTime       time.Time `gorm:"not null;index"`
	EndTime         *time.Time
	BreakSeconds    int     `gorm:"not null;default:0"`
	Status          string  `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	Notes           *string `gorm:"type:text"`
	ApprovedBy      *uuid.UUID
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

func IsValidEntryType(t string) bool {
	switch t {
	case TypeRegular, TypeOvertime, TypeBreak, TypePersonal:
		return true
	}
	return false
}

// WorkedHours returns the payable duration of a completed entry, net of
// breaks. BREAK and PERSONAL entries never contribute hours.
func (e TimeEntry) WorkedHours() decimal.Decimal {
	if e.EndTime == nil {
		return decimal.Zero
	}
	if e.EntryType == TypeBreak || e.EntryType == TypePersonal {
		return decimal.Zero
	}

	seconds := int64(e.EndTime.Sub(e.StartTime).Seconds()) - int64(e.BreakSeconds)
	if seconds <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600))
}

// BreakHours returns the break time a completed entry carries: the full
// duration of a BREAK entry, or the recorded break seconds of a worked
// entry. PERSONAL entries are neither work nor break.
func (e TimeEntry) BreakHours() decimal.Decimal {
	if e.EndTime == nil {
		return decimal.Zero
	}

	var seconds int64
	switch e.EntryType {
	case TypeBreak:
		seconds = int64(e.EndTime.Sub(e.StartTime).Seconds())
	case TypePersonal:
		return decimal.Zero
	default:
		seconds = int64(e.BreakSeconds)
	}
	if seconds <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600))
}
