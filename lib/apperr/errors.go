// Package apperr defines the error kinds surfaced by candidate lifecycle
// operations.
package apperr

import (
	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindPersistence   Kind = "persistence"
)

// Error carries a kind and an optional cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Cause is used by errors.Cause.
func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{kind: kind, msg: errors.Errorf(format, args...).Error()})
}

func Validation(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func Authorization(format string, args ...interface{}) error {
	return newError(KindAuthorization, format, args...)
}

func NotFound(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

// Conflict reports a stale snapshot write. It is a persistence failure the
// caller can recover from by reloading.
func Conflict(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

// Persistence wraps a repository failure.
func Persistence(cause error, msg string) error {
	return errors.WithStack(&Error{kind: KindPersistence, msg: msg, cause: cause})
}

// KindOf returns the kind of err or an empty kind for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return ""
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func IsAuthorization(err error) bool {
	return KindOf(err) == KindAuthorization
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

// IsPersistence reports repository failures, stale writes included.
func IsPersistence(err error) bool {
	kind := KindOf(err)
	return kind == KindPersistence || kind == KindConflict
}
