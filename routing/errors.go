package routing

import (
	"errors"
	"fmt"
)

// Sentinel errors for well-known build failures.
var (
	ErrEmptyRoute = errors.New("empty route")
	ErrNilHandler = errors.New("nil handler")
)

// TemplateError reports a route template that could not be built or
// compiled. It is fatal to registration.
type TemplateError struct {
	Route   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("route template %q: %s", e.Route, e.Message)
	}
	return fmt.Sprintf("route template: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *TemplateError) Is(target error) bool {
	_, ok := target.(*TemplateError)
	return ok || errors.Is(e.Cause, target)
}

// UnmatchedPathError reports a Params call on a path the template does
// not match. This is a programmer error, never surfaced to clients:
// check Match before extracting parameters.
type UnmatchedPathError struct {
	Route string
	Path  string
}

// Error implements the error interface.
func (e *UnmatchedPathError) Error() string {
	return fmt.Sprintf("path %q does not match route template %q", e.Path, e.Route)
}

// Is checks if the error matches the target.
func (e *UnmatchedPathError) Is(target error) bool {
	_, ok := target.(*UnmatchedPathError)
	return ok
}
