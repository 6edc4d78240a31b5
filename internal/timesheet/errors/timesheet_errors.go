package timesheeterrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"timesheet not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidWeekStart = apperror.New(
		apperror.CodeInvalidInput,
		"week_start must be a Monday in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrTimesheetLocked = apperror.New(
		apperror.CodeInvalidState,
		"timesheet is past draft and cannot be recalculated",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"timesheet status transition not allowed",
		http.StatusConflict,
	)
)
