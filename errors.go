package fixture

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrMissingSchema is returned when a model declares no fields.
	ErrMissingSchema = errors.New("fixture: model has no schema")

	// ErrUnknownModel is returned when a model is not part of the client graph.
	ErrUnknownModel = errors.New("fixture: model is not part of the graph")

	// ErrCycle is returned when a required relation leads back to a model
	// that is already being created.
	ErrCycle = errors.New("fixture: relation cycle detected")

	// ErrUnsupportedDialect is returned by Clean for storage engines without
	// a registered truncator.
	ErrUnsupportedDialect = errors.New("fixture: unsupported dialect")
)

// ConfigError represents a model or graph configuration error.
type ConfigError struct {
	Model string // Model name
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("fixture: model %q: %v", e.Model, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError returns a new ConfigError for the given model.
func NewConfigError(model string, err error) *ConfigError {
	return &ConfigError{Model: model, Err: err}
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e)
}

// InputError represents a malformed override passed by the caller.
type InputError struct {
	Model string // Model name
	Field string // Field or relation name
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *InputError) Error() string {
	return fmt.Sprintf("fixture: invalid override %s.%s: %v", e.Model, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError returns a new InputError for the given model field.
func NewInputError(model, field string, err error) *InputError {
	return &InputError{Model: model, Field: field, Err: err}
}

// IsInputError returns true if the error is an InputError.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	var e *InputError
	return errors.As(err, &e)
}

// CycleError represents a required relation cycle.
type CycleError struct {
	Path []string // Model names, from the top-level model to the repeated one
}

// Error returns the error string.
func (e *CycleError) Error() string {
	return fmt.Sprintf("fixture: relation cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Is reports whether the target error matches CycleError.
// This allows errors.Is(cycleErr, ErrCycle) to return true.
func (e *CycleError) Is(err error) bool {
	return err == ErrCycle
}

// NewCycleError returns a new CycleError for the given model path.
func NewCycleError(path ...string) *CycleError {
	return &CycleError{Path: path}
}

// IsCycle returns true if the error is a CycleError.
func IsCycle(err error) bool {
	if err == nil {
		return false
	}
	var e *CycleError
	return errors.As(err, &e) || errors.Is(err, ErrCycle)
}

// UnsupportedDialectError is returned when no truncator is registered for
// the dialect of the store.
type UnsupportedDialectError struct {
	Dialect string
}

// Error returns the error string.
func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("fixture: unsupported dialect %q", e.Dialect)
}

// Is reports whether the target error matches UnsupportedDialectError.
func (e *UnsupportedDialectError) Is(err error) bool {
	return err == ErrUnsupportedDialect
}

// NewUnsupportedDialectError returns a new UnsupportedDialectError.
func NewUnsupportedDialectError(dialect string) *UnsupportedDialectError {
	return &UnsupportedDialectError{Dialect: dialect}
}

// IsUnsupportedDialect returns true if the error is an UnsupportedDialectError.
func IsUnsupportedDialect(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedDialectError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedDialect)
}

// NotLoadedError represents an error when accessing an edge that was not
// populated while creating the instance.
type NotLoadedError struct {
	edge string
}

// Error returns the error string.
func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("fixture: edge %q was not loaded", e.edge)
}

// NewNotLoadedError returns a new NotLoadedError for the given edge name.
func NewNotLoadedError(edge string) *NotLoadedError {
	return &NotLoadedError{edge: edge}
}

// IsNotLoaded returns true if the error is a NotLoadedError.
func IsNotLoaded(err error) bool {
	if err == nil {
		return false
	}
	var e *NotLoadedError
	return errors.As(err, &e)
}
