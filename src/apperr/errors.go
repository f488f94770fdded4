// Package apperr holds the error kinds shared by the market, ledger and game packages.
// Handlers translate them to HTTP statuses; everything else is an infrastructure error.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError is a failed precondition on a trade or a game creation request.
// Message is safe to show to the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictingPositionError is raised when a trade would hold both a long and a short
// position on the same symbol.
type ConflictingPositionError struct {
	Symbol  string
	Message string
}

func (e *ConflictingPositionError) Error() string { return e.Message }

// NotFoundError references a missing game, holding or price.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// RateLimitedError means the local provider quota is exhausted until ResetAt.
type RateLimitedError struct {
	Limit   int
	ResetAt time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit reached: %d requests per window, resets at %s",
		e.Limit, e.ResetAt.UTC().Format(time.RFC3339))
}

// ExternalAPIError wraps a failure reported by the price provider.
type ExternalAPIError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
}

func (e *ExternalAPIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s error (status %d, code %s): %s", e.Provider, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Conflict(symbol, format string, args ...interface{}) error {
	return &ConflictingPositionError{Symbol: symbol, Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictingPositionError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsRateLimited(err error) bool {
	var target *RateLimitedError
	return errors.As(err, &target)
}

func IsExternalAPI(err error) bool {
	var target *ExternalAPIError
	return errors.As(err, &target)
}
