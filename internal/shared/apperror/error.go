package apperror

import "fmt"

// AppError is the error type every service returns; handlers translate it to
// an HTTP envelope via ToHTTP.
type AppError struct {
	Code       string // stable code, e.g. INVALID_INPUT
	Message    string // user-facing message
	HTTPStatus int
	Err        error // wrapped cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with no wrapped cause. Services declare their
// sentinel errors with it.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap creates an AppError around an existing error, nil in nil out.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
