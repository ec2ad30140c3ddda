package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so transport layers can map it without
// knowing every sentinel.
type Kind string

const (
	KindConflict         Kind = "conflict"
	KindNotFound         Kind = "not_found"
	KindInvalidReference Kind = "invalid_reference"
	KindPolicyViolation  Kind = "policy_violation"
	KindValidation       Kind = "validation"
	KindUnauthorized     Kind = "unauthorized"
	KindForbidden        Kind = "forbidden"
	KindInternal         Kind = "internal"
)

// Error is a sentinel-friendly domain error. Compare with errors.Is.
type Error struct {
	kind    Kind
	message string
}

// New creates a domain error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string { return e.message }

// ErrorKind returns the classification of the error.
func (e *Error) ErrorKind() Kind { return e.kind }

type kinded interface {
	ErrorKind() Kind
}

// KindOf resolves the kind of err through any wrapping.
// Errors without a kind are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindInternal
}

// Message returns the message of the first domain error in the chain,
// falling back to err.Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.message
	}
	return err.Error()
}

// InUseError reports a policy violation caused by live references to an entity.
type InUseError struct {
	Sentinel *Error
	Count    int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s: referenced by %d user(s)", e.Sentinel.message, e.Count)
}

func (e *InUseError) ErrorKind() Kind { return e.Sentinel.kind }

func (e *InUseError) Is(target error) bool { return target == e.Sentinel }
