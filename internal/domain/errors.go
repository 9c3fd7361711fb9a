package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals malformed or missing caller input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRateLimited signals that the caller exhausted its request window.
	ErrRateLimited = errors.New("rate limited")
	// ErrAssistantUnavailable signals a failed or timed-out language-understanding call.
	// It never reaches the caller: classification falls back to local extraction.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
	// ErrStoreUnavailable signals a datastore failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError wraps ErrInvalidRequest with a caller-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidRequest.Error(), e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// NewValidationError creates a validation error with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
