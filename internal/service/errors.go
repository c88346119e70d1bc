package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/pantry-api/internal/store"
)

// Common service errors. Callers check them with errors.Is.
var (
	// ErrRecipeNotFound indicates that no recipe document has the requested ID.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrPantryNotFound indicates that no pantry document has the requested ID.
	ErrPantryNotFound = errors.New("pantry not found")
)

// ServiceError wraps unexpected errors from the readiness service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_recipe", "rank_recipes")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("readiness service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("readiness service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// A store not-found error is translated to notFound when notFound is non-nil.
func NewServiceError(operation, message string, err, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && store.IsNotFoundError(err) {
		return notFound
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
