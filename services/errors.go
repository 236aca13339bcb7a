package services

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindInvalid ErrorKind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error carries a user-safe message and a kind the HTTP boundary maps to a
// status code. Anything that is not a *Error is treated as internal.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func ErrInvalid(msg string) error      { return &Error{Kind: KindInvalid, Message: msg} }
func ErrNotFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func ErrConflict(msg string) error     { return &Error{Kind: KindConflict, Message: msg} }
func ErrUnauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }
func ErrForbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }

// HTTPStatus maps a service error to the response status.
func HTTPStatus(err error) int {
	var se *Error
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalid, KindConflict:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err is a service error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}
