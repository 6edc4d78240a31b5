package paycomponenterrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrDeductionTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"deduction type not found",
		http.StatusNotFound,
	)
	ErrBonusTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"bonus type not found",
		http.StatusNotFound,
	)
	ErrDuplicateDeductionTypeName = apperror.New(
		apperror.CodeConflict,
		"deduction type name already exists",
		http.StatusConflict,
	)
	ErrDuplicateBonusTypeName = apperror.New(
		apperror.CodeConflict,
		"bonus type name already exists",
		http.StatusConflict,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"percentage amount must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrComponentInactive = apperror.New(
		apperror.CodeInvalidState,
		"pay component is inactive",
		http.StatusConflict,
	)
)
