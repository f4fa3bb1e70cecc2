// Package dserr implements the engine's error taxonomy: typed faults
// carrying an optional source position, re-keyed to this engine's kinds
// instead of JSONata's S0xxx/T0xxx/D0xxx codes.
package dserr

import "fmt"

// Kind classifies an Error by what went wrong, as a terse S0xxx/T0xxx/
// D0xxx/U0xxx code: S for header/syntax errors, T for type/arity
// mismatches, D for domain/evaluation errors, U for undefined-symbol
// lookups.
type Kind string

const (
	TypeMismatch    Kind = "T0410"
	ArityMismatch   Kind = "T0411"
	DomainError     Kind = "D1001"
	CodecNotFound   Kind = "D1002"
	CodecFailure    Kind = "D1003"
	HeaderParseErr  Kind = "S0500"
	UndefinedSymbol Kind = "U1001"
)

// Error is the engine's uniform fault type. Position is the byte offset
// in the source script where the triggering expression began, or -1 if
// the caller didn't supply one (e.g. an error raised from inside a
// codec plugin, which has no script position).
type Error struct {
	Kind     Kind
	Message  string
	Position int
	Err      error
}

func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with no known source position.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Position: -1}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// At attaches a source position to an Error, returning a copy so the
// original (position-less) Error stays reusable as a sentinel.
func (e *Error) At(pos int) *Error {
	cp := *e
	cp.Position = pos
	return &cp
}

// Wrap creates a CodecFailure Error wrapping an underlying plugin error —
// the engine surfaces whatever the plugin raised without transforming
// it.
func Wrap(err error) *Error {
	return &Error{Kind: CodecFailure, Message: err.Error(), Position: -1, Err: err}
}

// TypeErrorf builds the canonical "Expected <kinds>, got: <prettyName>"
// TypeMismatch message.
func TypeErrorf(expectedKinds, gotPrettyName string) *Error {
	return New(TypeMismatch, fmt.Sprintf("Expected %s, got: %s", expectedKinds, gotPrettyName))
}

// ArityErrorf builds the canonical arity-mismatch message for user
// callback validation: "Expected embedded function to have <N>
// parameters, received: <got>".
func ArityErrorf(allowed string, got int) *Error {
	return New(ArityMismatch, fmt.Sprintf("Expected embedded function to have %s parameters, received: %d", allowed, got))
}

// CodecNotFoundf builds the CodecNotFound message.
func CodecNotFoundf(typ, subtype string) *Error {
	return New(CodecNotFound, fmt.Sprintf("No suitable plugin found for mime type: %s/%s", typ, subtype))
}
