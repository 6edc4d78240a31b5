package employeeerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee with this email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee number already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"base_salary must be greater than zero",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"department not found",
		http.StatusBadRequest,
	)
	ErrInvalidEmploymentStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employment status",
		http.StatusBadRequest,
	)
)
