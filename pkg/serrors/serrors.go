// Package serrors provides semantic error kinds shared by the domain, storage
// and facade layers. A caller (typically the excluded API layer) inspects the
// kind with errors.Is or KindOf to decide how to surface a failure, while the
// concrete cause stays reachable through the usual unwrapping chain.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. The unexported method keeps arbitrary errors from passing for
// a kind, so KindOf and errors.As only ever report real categories.
type Kind interface {
	error
	isKind()
}

// kind is the only Kind implementation. Values are compared by their name,
// so two kinds created with the same name are the same sentinel.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a semantic error kind named name. The name is what an Error
// carrying only this kind prints. Kinds are meant to be declared once as
// package-level sentinels and matched with errors.Is through an Error.
func NewKind(name string) Kind { return kind{s: name} }

// The kinds below cover every failure the domain, storage and facade layers
// report. A caller maps each of them to its own surface, an exit code or a
// status, without inspecting messages.
var (
	// ErrValidation indicates a field-level contract violation on an entity.
	ErrValidation = NewKind("VALIDATION")
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrConflict indicates a uniqueness rule would be broken (email, amenity
	// name, one review per user and place).
	ErrConflict = NewKind("CONFLICT")
	// ErrUnauthorized indicates the caller could not be authenticated or acts
	// on behalf of someone else.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the caller is known but not allowed to perform the operation.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrInternal indicates an unexpected failure of a backing store.
	ErrInternal = NewKind("INTERNAL")
)

// Error is a semantic error carrying a kind, an optional wrapped cause and an
// optional message. It supports errors.Is, errors.As and errors.Unwrap.
//
// Matching semantics:
//   - errors.Is(err, target) reports true when target is the kind sentinel or
//     matches anywhere in the wrapped cause chain.
//   - errors.As(err, target) succeeds when either the kind or a wrapped cause
//     can be assigned to target; the kind is tried first.
//   - a nil *Error matches only a nil target.
//
// Error string formatting:
//   - If both msg and err are set: "<msg>: <err>"
//   - If only msg is set: "<msg>"
//   - If only err is set: "<err>"
//   - If neither set: the kind's Error() string.
type Error struct {
	kind Kind  // semantic category, never nil when built by this package
	err  error // concrete cause (optional)
	msg  string
}

// With constructs a new semantic error with the given kind and a formatted
// message. Use Wrap when a concrete cause should stay reachable.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind around the cause
// err, prefixed with a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind, with neither a
// message nor a cause. Its string form is the kind name.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause so that the standard errors helpers can
// walk past this error.
func (e *Error) Unwrap() error { return e.err }

// Is matches either the kind sentinel or the wrapped error chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As enables type assertions against either the kind sentinel or the wrapped
// error in the chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error, without the cause.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }

// KindOf returns the first semantic kind found in err's chain, or ErrInternal
// when err carries none. It returns nil for a nil error.
func KindOf(err error) Kind {
	if err == nil {
		return nil
	}

	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return ErrInternal
}
