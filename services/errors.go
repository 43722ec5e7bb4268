package services

import "errors"

// Sentinel errors shared by all services. Handlers translate them to HTTP
// status codes (404, 400, 403). Wrap with fmt.Errorf("...: %w", Err...) to
// add context while keeping errors.Is matching intact.
var (
	// ErrNotFound means the referenced row does not exist within the given
	// tenant scope. A row that exists under another org is still NotFound.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was rejected before any persistence
	// side effect took place.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden means the caller is authenticated but not allowed to
	// perform the operation.
	ErrForbidden = errors.New("forbidden")
)
