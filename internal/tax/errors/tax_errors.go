package taxerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrNoBracketsConfigured = apperror.New(
		apperror.CodeNotFound,
		"no tax brackets configured for this country and year",
		http.StatusNotFound,
	)
	ErrEmptySchedule = apperror.New(
		apperror.CodeInvalidInput,
		"a tax schedule needs at least one bracket",
		http.StatusBadRequest,
	)
	ErrScheduleNotContiguous = apperror.New(
		apperror.CodeInvalidInput,
		"brackets must be contiguous, each min_amount must equal the previous max_amount",
		http.StatusBadRequest,
	)
	ErrScheduleMustStartAtZero = apperror.New(
		apperror.CodeInvalidInput,
		"the first bracket must start at 0",
		http.StatusBadRequest,
	)
	ErrInvalidBracketBounds = apperror.New(
		apperror.CodeInvalidInput,
		"bracket max_amount must be greater than min_amount",
		http.StatusBadRequest,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"rate_percent must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrFixedAmountMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"fixed_amount must equal the cumulative tax of all lower brackets",
		http.StatusBadRequest,
	)
	ErrOpenBracketNotLast = apperror.New(
		apperror.CodeInvalidInput,
		"only the last bracket may have no max_amount",
		http.StatusBadRequest,
	)
	ErrInvalidGrossAmount = apperror.New(
		apperror.CodeInvalidInput,
		"gross amount must not be negative",
		http.StatusBadRequest,
	)
)
