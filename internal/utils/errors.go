package utils

import "fmt"

// ErrorCode buckets client-side failures so callers can react by category
// instead of string matching.
type ErrorCode string

const (
	CodeAuth       ErrorCode = "auth"
	CodeNetwork    ErrorCode = "network"
	CodeValidation ErrorCode = "validation"
	CodeChat       ErrorCode = "chat"
	CodeStorage    ErrorCode = "storage"
	CodeTheme      ErrorCode = "theme"
)

type AppError struct {
	Code    ErrorCode
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// WithDetails returns a copy carrying extra context, keeping the original
// usable as a sentinel.
func (e *AppError) WithDetails(details string) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Details: details}
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

func AuthError(msg string) *AppError       { return NewAppError(CodeAuth, msg) }
func NetworkError(msg string) *AppError    { return NewAppError(CodeNetwork, msg) }
func ValidationError(msg string) *AppError { return NewAppError(CodeValidation, msg) }
func ChatError(msg string) *AppError       { return NewAppError(CodeChat, msg) }
func StorageError(msg string) *AppError    { return NewAppError(CodeStorage, msg) }
func ThemeError(msg string) *AppError      { return NewAppError(CodeTheme, msg) }

func hasCode(err error, code ErrorCode) bool {
	ae, ok := err.(*AppError)
	return ok && ae.Code == code
}

func IsValidationError(err error) bool { return hasCode(err, CodeValidation) }
func IsAuthError(err error) bool       { return hasCode(err, CodeAuth) }
func IsChatError(err error) bool       { return hasCode(err, CodeChat) }
