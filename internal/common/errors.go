package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidBody  = fmt.Errorf("invalid request body: %w", ErrInvalidInput)
	ErrUpstream     = errors.New("upstream failure")

	// Forum errors
	ErrPostNotFound     = fmt.Errorf("post not found: %w", ErrNotFound)
	ErrReplyNotFound    = fmt.Errorf("reply not found: %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category not found: %w", ErrNotFound)
	ErrPostLocked       = fmt.Errorf("post is locked: %w", ErrForbidden)
	ErrContentTooShort  = fmt.Errorf("content too short: %w", ErrInvalidInput)

	// Event errors
	ErrEventNotFound      = fmt.Errorf("event not found: %w", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("team not found: %w", ErrNotFound)
	ErrAddressNotResolved = fmt.Errorf("address not resolved: %w", ErrInvalidInput)

	// Misc
	ErrArticleNotFound      = fmt.Errorf("article not found: %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification not found: %w", ErrNotFound)
	ErrDuplicateSlug        = fmt.Errorf("slug already exists: %w", ErrInvalidInput)
)

// ValidationError is a field level input error; it matches ErrInvalidInput
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StatusFor maps an error onto its HTTP status
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
