package timeentryerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidEntryType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entry type",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
	ErrInvalidBreakSeconds = apperror.New(
		apperror.CodeInvalidInput,
		"break_seconds cannot be negative or exceed the entry duration",
		http.StatusBadRequest,
	)
	ErrEntryOverlap = apperror.New(
		apperror.CodeConflict,
		"time entry overlaps an existing entry",
		http.StatusConflict,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"an active time entry already exists",
		http.StatusConflict,
	)
	ErrNoActiveEntry = apperror.New(
		apperror.CodeInvalidState,
		"no active time entry to clock out",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"time entry status transition not allowed",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
)
