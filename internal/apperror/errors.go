// Package apperror defines the error types surfaced by the client core:
// validation failures caught before any network call, and gateway failures
// reported by the backend.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// GenericMessage is shown when a failure carries no usable message.
const GenericMessage = "operation failed"

// ErrNotAuthenticated is returned when a command needs a stored token.
var ErrNotAuthenticated = errors.New("not logged in: run 'expensewise login' first")

// FieldError describes why one input field was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a failing field.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// Has reports whether field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// FieldNames returns the failing field names in the order they were added.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// OrNil returns nil when nothing failed, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// GatewayError is a failed call to the backend. StatusCode is zero when the
// request never got a response (timeout, connection refused).
type GatewayError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a GatewayError with the given status.
func IsStatus(err error, status int) bool {
	var gw *GatewayError
	return errors.As(err, &gw) && gw.StatusCode == status
}

// UserMessage maps err to the text shown to the user: the validation
// summary, the backend's own message when it sent one, or fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if fallback == "" {
		fallback = GenericMessage
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return "Please check: " + strings.Join(ve.FieldNames(), ", ")
	}
	var gw *GatewayError
	if errors.As(err, &gw) && strings.TrimSpace(gw.Message) != "" {
		return gw.Message
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return ErrNotAuthenticated.Error()
	}
	return fallback
}
