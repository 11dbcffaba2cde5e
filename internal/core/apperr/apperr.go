// Package apperr defines the error kinds every core operation reports.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInternal         Kind = "internal"
	KindNotFound         Kind = "not_found"
	KindForbidden        Kind = "forbidden"
	KindMaxDepthReached  Kind = "max_depth_reached"
	KindSelfFollow       Kind = "self_follow"
	KindAlreadyFollowing Kind = "already_following"
	KindNotFollowing     Kind = "not_following"
	KindValidation       Kind = "validation_error"
	KindBadRequest       Kind = "bad_request"
	KindUnauthorized     Kind = "unauthorized"
)

// Error carries a Kind, a client-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

var (
	ErrForbidden        = New(KindForbidden, "You don't have permission to access this resource")
	ErrMaxDepthReached  = New(KindMaxDepthReached, "Maximum comment depth reached")
	ErrSelfFollow       = New(KindSelfFollow, "You cannot follow yourself")
	ErrAlreadyFollowing = New(KindAlreadyFollowing, "Already following this user")
	ErrNotFollowing     = New(KindNotFollowing, "You are not following this user")
	ErrUnauthorized     = New(KindUnauthorized, "You are not authorized to perform this action")
)

// NotFound builds the "<entity> not found" error.
func NotFound(entity string) *Error {
	return New(KindNotFound, entity+" not found")
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// KindOf reports the Kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
