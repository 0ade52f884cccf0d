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

// ErrInvalidInput indicates that a purchase request could not be parsed (product id or quantity).
var ErrInvalidInput = errors.New("invalid input")

// ErrInsufficientStock indicates that the requested quantity exceeds the remaining stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInsufficientFunds indicates that the inserted cash does not cover the price.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// AppError wraps an underlying error with an HTTP-ish status code and a message
// that is safe to return to clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
