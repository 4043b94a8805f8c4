package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyProcessing indicates that an import is already in progress for the
// requested workspace and month. Callers should poll the job status instead of
// resubmitting the file.
var ErrAlreadyProcessing = errors.New("import already in progress")

// ErrNotReady indicates that statistics were requested before the import for
// that month reached a completed state.
var ErrNotReady = errors.New("statistics not ready")

// AppError wraps an underlying error with an HTTP-ish status code and a
// caller-facing message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
