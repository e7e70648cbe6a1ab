package db

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is matched by every NotFoundError through errors.Is.
var ErrNotFound = errors.New("not_found")

// ConfigurationError reports backend settings that are absent. It is raised
// by Acquire before any I/O is attempted.
type ConfigurationError struct {
	Backend string
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s backend is not configured: missing %s", e.Backend, strings.Join(e.Missing, ", "))
}

// ConnectivityError wraps a failure to reach a backend.
type ConnectivityError struct {
	Backend string
	Err     error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s backend unreachable: %v", e.Backend, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// NotFoundError names the entity kind and id that did not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError is a rejection of the supplied data, either by this
// service (unknown field, malformed id) or by the backend (constraint
// violation, invalid input syntax). Status is the HTTP status to surface.
type ValidationError struct {
	Status  int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Invalid builds a 400 ValidationError for one field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{
		Status:  http.StatusBadRequest,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// RemoteStoreError is a non-success answer from the remote table store that
// does not classify as a validation problem.
type RemoteStoreError struct {
	Status int
	Body   string
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("remote store responded %d: %s", e.Status, e.Body)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
