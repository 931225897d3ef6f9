package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
	// Details carries values the presentation layer shows next to the
	// message, e.g. the expected column names.
	Details []string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Details: appErr.Details,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
			Details: appErr.Details,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// GetDetails returns the details of the outermost AppError in err's chain
func GetDetails(err error) []string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// IsRecoverable reports whether the user can fix err with a new upload
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case CodeMissingColumns, CodeUnsupportedFormat, CodeParseError, CodeInvalidInput:
		return true
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeMissingColumns    = "MISSING_COLUMNS"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeParseError        = "PARSE_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// MissingColumns reports required columns absent after header normalization.
// Details lists every expected column so the caller can show all of them.
func MissingColumns(expected, missing []string) *AppError {
	quoted := make([]string, len(expected))
	for i, name := range expected {
		quoted[i] = "'" + name + "'"
	}
	return &AppError{
		Code:    CodeMissingColumns,
		Message: fmt.Sprintf("As colunas %s não foram encontradas (ausentes: %s)", strings.Join(quoted, " ou "), strings.Join(missing, ", ")),
		Details: append([]string(nil), expected...),
	}
}

// UnsupportedFormat reports an upload whose extension is not accepted
func UnsupportedFormat(filename string, supported []string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedFormat,
		Message: fmt.Sprintf("formato de arquivo não suportado: %q (use %s)", filename, strings.Join(supported, " ou ")),
		Details: append([]string(nil), supported...),
	}
}

// ParseFailed reports malformed content for the declared format
func ParseFailed(format string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseError,
		Message: fmt.Sprintf("falha ao ler arquivo %s", strings.ToUpper(format)),
		Cause:   cause,
	}
}
