package paysliperrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payslip already exists for this employee and period",
		http.StatusConflict,
	)
	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll period not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"payslip status transition not allowed",
		http.StatusConflict,
	)
	ErrPayslipImmutable = apperror.New(
		apperror.CodeInvalidState,
		"approved payslip line items cannot be changed",
		http.StatusConflict,
	)
	ErrInvalidBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"base salary must be positive",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrAmountRequired = apperror.New(
		apperror.CodeInvalidInput,
		"amount is required for performance-linked bonuses",
		http.StatusBadRequest,
	)
	ErrComponentInactive = apperror.New(
		apperror.CodeInvalidState,
		"deduction or bonus type is inactive",
		http.StatusConflict,
	)
	ErrInvalidPaymentDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payment date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
