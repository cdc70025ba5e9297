// Package errors implements a single language-error kind: binding, arity,
// type, user-raised and most syntax faults surface as one *Error,
// optionally tagged with the position it occurred at and the name of the
// primitive that raised it. The lexer's unterminated-string error and the
// parser's incomplete-input error are plain Go errors instead.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/nfiedler-tsi/tsi-go/internal/lexer"
)

// Error is the single language-error kind. Control-flow signals (a
// continuation invocation) are a distinct Go type the evaluator handles
// internally and are never wrapped in an Error.
type Error struct {
	Message string
	Pos     *lexer.Position // nil if no source position is known
	Prim    string          // name of the raising primitive, if any
}

// New builds an Error with a plain message and no position.
func New(msg string) *Error { return &Error{Message: msg} }

// Newf builds an Error with a formatted message and no position.
func Newf(format string, args ...any) *Error { return &Error{Message: fmt.Sprintf(format, args...)} }

// AtPosition attaches a source position to an error, returning a copy with
// the Pos field set (the message is unchanged).
func (e *Error) AtPosition(pos lexer.Position) *Error {
	clone := *e
	clone.Pos = &pos
	return &clone
}

// WithPrimitive appends the raising primitive's name to the message, unless
// the primitive was registered as "raw" (see internal/evaluator's Apply
// contract). A primitive's name is appended exactly once: calling this on
// an Error that already carries a Prim is a no-op.
func (e *Error) WithPrimitive(name string) *Error {
	if e.Prim != "" {
		return e
	}
	clone := *e
	clone.Prim = name
	return &clone
}

// Error implements the error interface: "<message> -- <primitive>" when a
// raising primitive is attached, else just "<message>".
func (e *Error) Error() string {
	if e.Prim != "" {
		return fmt.Sprintf("%s -- %s", e.Message, e.Prim)
	}
	return e.Message
}

// Wrap turns an arbitrary Go error returned by a primitive's
// implementation (e.g. a host function registered through pkg/tsi) into a
// language Error tagged with the raising primitive's name, so that
// host-level faults surface the same way as any other language error.
func Wrap(err error, primitiveName string) *Error {
	if le, ok := err.(*Error); ok {
		return le.WithPrimitive(primitiveName)
	}
	return &Error{Message: err.Error(), Prim: primitiveName}
}

// As reports whether err is (or wraps) a language *Error.
func As(err error) (*Error, bool) {
	var le *Error
	ok := stderrors.As(err, &le)
	return le, ok
}
