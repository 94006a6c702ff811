package billing

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("not found")
	ErrGeneration        = errors.New("id generation failed")
	ErrConflict          = errors.New("conflicting update")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ValidationError reports malformed input. Field is empty for whole-request problems.
type ValidationError struct {
	Field   string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrValidation, e.Details)
	}
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Details)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Details: fmt.Sprintf(format, args...)}
}

type InsufficientStockError struct {
	ProductID uint
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%v for %s: available %d, requested %d", ErrInsufficientStock, e.Product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// GenerationError means a display id could not be allocated. Retryable.
type GenerationError struct {
	Kind string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v for %s: %v", ErrGeneration, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() []error { return []error{ErrGeneration, e.Err} }

// ConflictError covers concurrent-update races and restricted deletes.
type ConflictError struct {
	Reason string
	Err    error
	// Retryable is false for conflicts a retry cannot resolve, such as deleting a referenced row.
	Retryable bool
}

func (e *ConflictError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", ErrConflict, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %v", ErrConflict, e.Reason, e.Err)
}

func (e *ConflictError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConflict}
	}
	return []error{ErrConflict, e.Err}
}

type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%v during %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() []error { return []error{ErrStoreUnavailable, e.Err} }

// IsRetryable reports whether the caller may retry the failed operation with backoff.
func IsRetryable(err error) bool {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Retryable
	}
	return errors.Is(err, ErrGeneration) || errors.Is(err, ErrStoreUnavailable)
}
