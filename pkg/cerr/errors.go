// Package cerr defines the closed set of error kinds a query can fail
// with, shared by every layer (value, expr, frame, plan, procedure,
// runner) so a caller can type-switch or errors.Is against a single
// vocabulary regardless of which layer raised it.
//
// An Op/Cause-carrying struct with Unwrap/Is, rather than ad hoc
// fmt.Errorf strings.
package cerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of fatal error categories a query can raise.
// UnknownLabelOrType is the sole non-fatal kind (a warning); every other
// kind aborts the query.
type Kind uint8

const (
	KindUnboundVariable Kind = iota
	KindUnknownParameter
	KindTypeMismatch
	KindUnsupportedTemporalAccessor
	KindInvalidArgument
	KindUnknownProcedure
	KindProcedureArity
	KindNonAggregatingInAggregateContext
	KindUnknownLabelOrType // warning only, never fatal
	KindGraphIOError       // passthrough from the graph model
	KindSyntaxError        // raised by pkg/cypherparse
	KindQueryTimeout       // raised by pkg/runner when config.QueryTimeout elapses
)

func (k Kind) String() string {
	switch k {
	case KindUnboundVariable:
		return "UnboundVariable"
	case KindUnknownParameter:
		return "UnknownParameter"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindUnsupportedTemporalAccessor:
		return "UnsupportedTemporalAccessor"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindUnknownProcedure:
		return "UnknownProcedure"
	case KindProcedureArity:
		return "ProcedureArity"
	case KindNonAggregatingInAggregateContext:
		return "NonAggregatingInAggregateContext"
	case KindUnknownLabelOrType:
		return "UnknownLabelOrType"
	case KindGraphIOError:
		return "GraphIOError"
	case KindSyntaxError:
		return "SyntaxError"
	case KindQueryTimeout:
		return "QueryTimeout"
	default:
		return "Unknown"
	}
}

// Error is the structured error type every layer raises. It carries the
// operation that failed, the error Kind, and an optional wrapped cause.
type Error struct {
	Op    string
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is supports errors.Is(err, cerr.KindX)-style checks via the package-level
// sentinels below: two *Error values match if their Kind matches.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New builds an *Error for the given kind. Flattened to one call since
// callers here always have Op/Kind/Msg on hand at the raise site.
func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg}
}

// Wrap builds an *Error that chains an underlying cause.
func Wrap(op string, kind Kind, msg string, cause error) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg, Cause: cause}
}

// Sentinels for errors.Is against a specific kind without constructing a
// full *Error (used by leaf helpers such as value.Temporal.Accessor that
// don't know the calling operation name).
var (
	ErrUnsupportedTemporalAccessor = New("Temporal.Accessor", KindUnsupportedTemporalAccessor, "unsupported temporal accessor")
	ErrUnboundVariable             = New("eval", KindUnboundVariable, "unbound variable")
	ErrInvalidArgument             = New("eval", KindInvalidArgument, "invalid argument")
)

// KindOf extracts the Kind from an error produced by this package, or
// false if err was not raised by cyphercore.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
