package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

// ErrUnauthorized means no credential was presented where one is required.
func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

// ErrForbidden means a credential was presented but is below the required tier.
func ErrForbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Status: 403}
}

func ErrInvalidBoardName(name string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: fmt.Sprintf("invalid board name: %q", name), Status: 400}
}

func ErrBoardExists(name string) *AppError {
	return &AppError{Code: "CONFLICT", Message: fmt.Sprintf("a board called %s already exists", name), Status: 409}
}

func ErrNoSuchBoard(name string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("a board called %s not found", name), Status: 404}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
