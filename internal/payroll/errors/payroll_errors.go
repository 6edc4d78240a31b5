package payrollerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll period not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must not be after end_date",
		http.StatusBadRequest,
	)
	ErrInvalidFrequency = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll frequency",
		http.StatusBadRequest,
	)
	ErrOverlappingPeriod = apperror.New(
		apperror.CodeConflict,
		"a payroll period already covers part of this range",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll period status transition not allowed",
		http.StatusConflict,
	)
	ErrUnapprovedPayslips = apperror.New(
		apperror.CodeInvalidState,
		"period has payslips that are not approved yet",
		http.StatusConflict,
	)
)
