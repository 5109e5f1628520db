package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy of the extraction pipeline.
var (
	// ErrSourceUnavailable: neither the text layer nor the rasterized pages of a
	// document could be read. The document is reported as failed, the batch continues.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrFieldUnresolved: an extractor exhausted its tiers. Never fatal.
	ErrFieldUnresolved = errors.New("field unresolved")
	// ErrUnparseable: a numeric candidate could not be disambiguated.
	ErrUnparseable = errors.New("ambiguous number unparseable")

	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrInternal     = errors.New("internal error")
)

// Error codes carried by AppError.
const (
	CodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	CodeConfig            = "CONFIG_ERROR"
	CodeRouteTable        = "ROUTE_TABLE_ERROR"
	CodePanic             = "PANIC"
)

// NewAppError builds an AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsSourceUnavailable reports whether err marks a document that could not be read at all.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
