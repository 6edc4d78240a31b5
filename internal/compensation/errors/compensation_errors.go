package compensationerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrCompensationNotFound = apperror.New(
		apperror.CodeNotFound,
		"compensation record not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidChangeType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid compensation change type",
		http.StatusBadRequest,
	)
	ErrInvalidNewSalary = apperror.New(
		apperror.CodeInvalidInput,
		"new_salary must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid effective_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
