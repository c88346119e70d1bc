package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInput is returned when a computation receives input it cannot
	// produce a defined result for.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyName is returned when a named entity has no name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNoIngredients is returned when a recipe lists no ingredients.
	ErrNoIngredients = errors.New("recipe must list at least one ingredient")

	// ErrNegativeAmount is returned when an ingredient amount is below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrNonFiniteAmount is returned when an amount is NaN or infinite.
	ErrNonFiniteAmount = errors.New("amount must be a finite number")

	// ErrInvalidDiet is returned when a stored diet value is not a known category.
	ErrInvalidDiet = errors.New("invalid diet")
)
