package types

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ToucheSir/mal/pkg/diagnostics"
)

// Error is a failure raised while reading or evaluating. Code is one of the
// diagnostics constants. Payload is set for values raised by throw and is
// preserved unchanged until a catch* binds it.
type Error struct {
	Code    string
	Message string
	Payload Value
	Span    *diagnostics.Span

	// Incomplete marks reader errors caused by input ending inside a form.
	Incomplete bool
}

func (e *Error) Error() string {
	if e.Code == diagnostics.EThrow {
		switch p := e.Payload.(type) {
		case Str:
			return p.Value
		case Int:
			return strconv.FormatInt(p.Value, 10)
		case Keyword:
			return ":" + p.Name
		}
		return fmt.Sprintf("uncaught exception of type %s", TypeName(e.Payload))
	}
	return e.Message
}

// Value returns what a catch* clause binds: the thrown payload, or the
// error description as text for every other kind of failure.
func (e *Error) Value() Value {
	if e.Code == diagnostics.EThrow {
		return e.Payload
	}
	return Str{Value: e.Message}
}

// Diagnostic converts the error for display.
func (e *Error) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(e.Code, e.Error(), e.Span, "")
}

// ReadError reports malformed source text.
func ReadError(span *diagnostics.Span, format string, args ...any) *Error {
	return &Error{Code: diagnostics.ERead, Message: fmt.Sprintf(format, args...), Span: span}
}

// LookupError reports an unbound symbol.
func LookupError(name string) *Error {
	return &Error{Code: diagnostics.ELookup, Message: fmt.Sprintf("'%s' not found", name)}
}

// ArityError reports a wrong number of arguments.
func ArityError(format string, args ...any) *Error {
	return &Error{Code: diagnostics.EArity, Message: fmt.Sprintf(format, args...)}
}

// ShapeError reports a special form whose arguments have the wrong shape.
func ShapeError(format string, args ...any) *Error {
	return &Error{Code: diagnostics.EShape, Message: fmt.Sprintf(format, args...)}
}

// Throw raises v as a user exception.
func Throw(v Value) *Error {
	return &Error{Code: diagnostics.EThrow, Message: "uncaught exception", Payload: v}
}

// HostError wraps a failure from a host primitive. Errors that are already
// *Error pass through unchanged.
func HostError(name string, err error) *Error {
	var malErr *Error
	if errors.As(err, &malErr) {
		return malErr
	}
	msg := err.Error()
	if name != "" {
		msg = name + ": " + msg
	}
	return &Error{Code: diagnostics.EHost, Message: msg}
}

// AsError extracts a *Error from err, wrapping foreign errors as host errors.
func AsError(err error) *Error {
	return HostError("", err)
}
