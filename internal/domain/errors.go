package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is lets errors.Is match the typed errors against their sentinels.
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrMalformedRow = errors.New("malformed row")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // event, era
	ResourceID   string // conflicting key, e.g. the unique_id value
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// MalformedRowError reports a stored value whose type does not match its column.
// Values are never coerced: the offending row and field are named instead.
type MalformedRowError struct {
	Entity string // config, event, era
	RowID  int64  // 0 when the id itself could not be read
	Field  string
	Value  any
}

// Error implements the error interface
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed %s row %d: field %s has unexpected value %v (%T)",
		e.Entity, e.RowID, e.Field, e.Value, e.Value)
}

// StatusCode implements the HTTPError interface
func (e *MalformedRowError) StatusCode() int {
	return http.StatusInternalServerError
}

// Is allows errors.Is() to match against ErrMalformedRow
func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}
