// Package errors defines the error taxonomy shared by the library, the
// storage backends, the CLI and the HTTP server.
//
// Catalog errors (not found, already exists, invalid state, invalid input)
// match a sentinel through errors.Is so callers can branch on the kind
// without knowing the concrete type. Infrastructure errors (config, parse,
// I/O, resource) wrap their cause and are unwrapped with errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Forwarders to the standard library so callers need one import.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinels matched by the catalog error types.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidState  = errors.New("invalid state")

	// ErrStoreClosed is returned by a store used after Close.
	ErrStoreClosed = errors.New("store closed")
)

// NotFoundError reports a lookup of an unknown natural key.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AlreadyExistsError reports an insert that collides on a natural key.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

func NewAlreadyExistsError(resource, id string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, ID: id}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with ID %s already exists", e.Resource, e.ID)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// StateError reports an operation the resource's current state forbids,
// such as borrowing a book that is lent out.
type StateError struct {
	Resource string
	ID       string
	Message  string
}

func NewStateError(resource, id, message string) *StateError {
	return &StateError{Resource: resource, ID: id, Message: message}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Resource, e.ID, e.Message)
}

func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

// ValidationError reports input rejected before any state changed.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// WrapValidation reports err as invalid input for field. A nil err stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConfigError reports an unusable setting, such as an unknown store scheme.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError reports a stored collection that could not be decoded.
type ParseError struct {
	Format string // json or yaml
	File   string
	Err    error
}

// WrapParse reports err as a decode failure of file. A nil err stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Err: err}
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("parse error in %s file %s: %v", e.Format, e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failed read or write against a store.
type IOError struct {
	Operation string // read, write, encode, rename, ...
	Path      string
	Err       error
}

func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapIO reports err as a failed operation on path. A nil err stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError reports a failure to open, create or close a component
// such as a store connection or the library itself.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

// WrapResource reports err as a failed operation on resource. A nil err
// stays nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, target, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports whether err is a natural-key conflict.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsInvalidState reports whether err is a state conflict.
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }

// IsValidationError reports whether err is invalid input.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }
