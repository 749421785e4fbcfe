package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Validation errors
	ErrInvalidDraw         = errors.New("invalid draw")
	ErrInvalidCorpus       = errors.New("invalid corpus")
	ErrInvalidCandidate    = errors.New("invalid candidate")
	ErrInvalidFilterConfig = errors.New("invalid filter config")
	ErrInvalidRequest      = errors.New("invalid generation request")
	ErrEmptyCorpus         = errors.New("corpus is empty")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInvalidDrawError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidDraw, reason)
}

// NewInvalidCorpusError reports the chronological index of the offending draw.
func NewInvalidCorpusError(index int, cause error) error {
	return fmt.Errorf("%w: draw %d: %w", ErrInvalidCorpus, index, cause)
}

func NewInvalidCandidateError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidCandidate, reason)
}

func NewInvalidFilterConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidFilterConfig, field, reason)
}

func NewInvalidRequestError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDraw) ||
		errors.Is(err, ErrInvalidCorpus) ||
		errors.Is(err, ErrInvalidCandidate) ||
		errors.Is(err, ErrInvalidFilterConfig) ||
		errors.Is(err, ErrInvalidRequest)
}
