package domain

import "errors"

// Domain errors represent lookup failures reported by driven adapters.
// Services translate them into benign defaults before they reach callers.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown entity type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidArgument indicates a query argument the host cannot execute,
	// such as an unknown sort field.
	ErrInvalidArgument = errors.New("invalid query argument")
)
