// Package tool implements the leaf services behind the MCP tools: clock
// reads, file reads/writes, shell execution, and URL fetches. Each service is
// a stateless pass-through to an OS or platform primitive; the only design
// here is argument handling and the closed error taxonomy every failure maps
// into.
package tool

import (
	"errors"
	"fmt"
)

// Kind classifies a tool failure. The set is closed: every error a tool
// service returns carries exactly one of these, and none are retried.
type Kind string

const (
	// KindNotFound — referenced identifier or file path does not exist.
	KindNotFound Kind = "not_found"
	// KindInvalidInput — caller-supplied value cannot be used as given.
	KindInvalidInput Kind = "invalid_input"
	// KindInternal — unexpected failure decoding bytes as text or writing a file.
	KindInternal Kind = "internal"
	// KindUpstream — a dependent external call (network fetch, process
	// execution) failed or returned a non-zero/non-text result.
	KindUpstream Kind = "upstream"
)

// Error is a tool failure with a human-readable message. The message includes
// the offending input value where that helps an automated caller self-correct;
// it never carries stack traces or internal state.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, optional
}

// Error returns the message alone. Constructors already fold the cause text
// into Message; Err exists for Unwrap, not for display.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind with a formatted message.
// A trailing %w verb wraps the cause into Err for errors.Is/As.
func Errorf(kind Kind, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{
		Kind:    kind,
		Message: err.Error(),
		Err:     errors.Unwrap(err),
	}
}

// KindOf returns the Kind of err if it is (or wraps) a tool *Error, and
// KindInternal otherwise: an unclassified failure is by definition unexpected.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}
