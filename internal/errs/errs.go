package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP layer can map it to a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
	KindInternal
)

// Error carries a kind plus one or more caller-facing messages.
// Validation failures may report several messages; everything else has one.
type Error struct {
	Kind     Kind
	Messages []string
	Err      error // wrapped cause, optional
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a validation error with the given messages.
func Validation(messages ...string) *Error {
	return &Error{Kind: KindValidation, Messages: messages}
}

// Validationf returns a single-message validation error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Messages: []string{fmt.Sprintf(format, args...)}}
}

// NotFound returns a not-found error with the given message.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Messages: []string{message}}
}

// Conflict returns a uniqueness-conflict error with the given message.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Messages: []string{message}}
}

// Unauthorized returns an auth error with the given message.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Messages: []string{message}}
}

// Internal wraps an unexpected failure. The message shown to callers is generic;
// the cause is kept for logging.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Messages: []string{"Internal server error"}, Err: err}
}

// KindOf reports the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessagesOf returns the caller-facing messages of err.
func MessagesOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Messages
	}
	return []string{"Internal server error"}
}
