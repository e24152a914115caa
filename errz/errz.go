// Package errz defines the error taxonomy shared by every component of the
// engine. Each error carries a Kind whose keyword appears verbatim in the
// Error() string, so external harnesses can match on failure classes like
// SandboxViolation or HashMismatch.
package errz

import (
	"errors"
	"fmt"
)

// Kind is the category of an engine error.
type Kind int

const (
	// Parse indicates malformed source or a malformed AST document.
	Parse Kind = iota
	// Integrity indicates an AST content hash that does not match its
	// stored hash.
	Integrity
	// Sandbox indicates a rejected capability, path, or command check.
	Sandbox
	// Type indicates an operation applied to values of incompatible kinds.
	Type
	// Runtime indicates any other fatal evaluation error.
	Runtime
)

// String returns the keyword for the kind. These strings are part of the
// engine's external contract and must not change.
func (k Kind) String() string {
	switch k {
	case Parse:
		return "ParseError"
	case Integrity:
		return "HashMismatch"
	case Sandbox:
		return "SandboxViolation"
	case Type:
		return "TypeError"
	default:
		return "RuntimeError"
	}
}

// Span is an optional source location attached to an error.
type Span struct {
	File string
	Line int
	Col  int
}

// IsZero returns true if the span has not been set.
func (s Span) IsZero() bool {
	return s.Line == 0 && s.Col == 0
}

// String returns the location as file:line:col.
func (s Span) String() string {
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Col)
}

// Error is the concrete error type used throughout the engine.
type Error struct {
	kind    Kind
	message string
	span    Span
	cause   error
}

// New returns an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface. The kind keyword always prefixes
// the message.
func (e *Error) Error() string {
	if e.span.IsZero() {
		return fmt.Sprintf("%s: %s", e.kind, e.message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.kind, e.message, e.span)
}

// Kind returns the category of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the message without the kind prefix.
func (e *Error) Message() string {
	return e.message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithSpan attaches a source location to the error.
func (e *Error) WithSpan(span Span) *Error {
	e.span = span
	return e
}

// WithCause wraps an underlying cause.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// KindOf reports the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
