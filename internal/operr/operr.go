// Package operr defines the typed failure taxonomy surfaced to callers.
// Internal cascade stages swallow their own failures; only exhaustion of a
// whole strategy chain produces one of these.
package operr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// NotFound: element, window, dialog, or menu item absent after
	// exhausting all strategies.
	NotFound Kind = iota
	// InvalidInput: malformed target, out-of-range index, unparseable id.
	InvalidInput
	// OperationFailed: the underlying tree/action/event call failed.
	OperationFailed
	// Timeout: a bounded internal fetch exhausted its deadline.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case OperationFailed:
		return "operation_failed"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a typed failure describing the overall failed operation.
// It names the operation (e.g. "resolve target for click") and a
// human-readable reason, never which internal stage failed.
type Error struct {
	Kind   Kind
	Op     string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a typed error.
func New(kind Kind, op, reason string) *Error {
	return &Error{Kind: kind, Op: op, Reason: reason}
}

// Newf constructs a typed error with a formatted reason.
func Newf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Reason: fmt.Sprintf(format, args...)}
}

// Wrap constructs a typed error around an underlying cause.
func Wrap(kind Kind, op, reason string, err error) *Error {
	return &Error{Kind: kind, Op: op, Reason: reason, Err: err}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err carries the NotFound kind.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == NotFound
}

// IsTimeout reports whether err carries the Timeout kind.
func IsTimeout(err error) bool {
	k, ok := KindOf(err)
	return ok && k == Timeout
}
