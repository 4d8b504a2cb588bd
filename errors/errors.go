// Package errors provides error types and classification for blob upload operations.
//
// Every failure produced by this module is either a configuration error
// (fatal, reported before any upload), a local I/O error or a transport error
// from the object store. The latter two are recorded per file and never abort
// a batch.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Error represents an upload operation error with context about what failed.
type Error struct {
	// Op is the operation that failed (e.g., "upload", "putObject", "config")
	Op string

	// Container is the blob container or bucket name (if applicable)
	Container string

	// Key is the destination blob key (if applicable)
	Key string

	// Path is the local file path (if applicable)
	Path string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	switch {
	case e.Container != "" && e.Key != "":
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Container, e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	case e.Container != "":
		return fmt.Sprintf("%s container %s: %v", e.Op, e.Container, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithContainer adds container context to an existing error.
func (e *Error) WithContainer(container string) *Error {
	e.Container = container
	return e
}

// WithKey adds blob key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithPath adds local path context to an existing error.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with container and key context.
func NewObjectError(op, container, key string, err error) *Error {
	return &Error{
		Op:        op,
		Container: container,
		Key:       key,
		Err:       err,
	}
}

// Sentinel errors. Use errors.Is() to check for them.
var (
	// ErrConfiguration indicates required configuration is missing or invalid.
	ErrConfiguration = errors.New("configuration error")

	// ErrIO indicates a local file could not be read
	ErrIO = errors.New("local file error")

	// ErrTransport indicates the object store rejected or failed a request
	ErrTransport = errors.New("transport error")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidKey indicates that the destination key cannot be used
	ErrInvalidKey = errors.New("invalid blob key")

	// ErrAccessDenied indicates the credentials were rejected by the store.
	// It is always reported together with ErrTransport.
	ErrAccessDenied = errors.New("access denied")

	// ErrContainerNotFound indicates the destination container does not exist.
	// It is always reported together with ErrTransport.
	ErrContainerNotFound = errors.New("container not found")
)

// Transport marks cause as a transport failure so that both
// errors.Is(err, ErrTransport) and errors.Is(err, cause) hold.
func Transport(cause error) error {
	if cause == nil || errors.Is(cause, ErrTransport) {
		return cause
	}
	return &kindError{kind: ErrTransport, cause: cause}
}

// IO marks cause as a local file failure.
func IO(cause error) error {
	if cause == nil || errors.Is(cause, ErrIO) {
		return cause
	}
	return &kindError{kind: ErrIO, cause: cause}
}

// Configuration marks cause as a configuration failure.
func Configuration(cause error) error {
	if cause == nil || errors.Is(cause, ErrConfiguration) {
		return cause
	}
	return &kindError{kind: ErrConfiguration, cause: cause}
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%v: %v", e.kind, e.cause)
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsIO reports whether err is a local file error.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsTransport reports whether err is a transport error.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsAccessDenied reports whether the store rejected the credentials.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsCanceled reports whether err stems from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Kind returns a short classification of err for status output. The marked
// kinds take precedence, so a store call interrupted by cancellation is
// still "transport".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConfiguration(err):
		return "configuration"
	case IsIO(err):
		return "io"
	case IsTransport(err):
		return "transport"
	case IsCanceled(err):
		return "canceled"
	case errors.Is(err, ErrInvalidKey), errors.Is(err, ErrInvalidInput):
		return "invalid"
	}
	return "unknown"
}
