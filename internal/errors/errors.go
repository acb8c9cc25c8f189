package errors

import "fmt"

// Kind classifies an application error
type Kind int

const (
	ErrInternal Kind = iota
	ErrValidation
	ErrNotFound
	ErrNoActiveSession
	ErrSessionMismatch
	ErrUnknownUser
	ErrPersistence
)

// Error is an application-level error with a kind for classification
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Constructor functions for common error types

func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func NoActiveSession() *Error {
	return &Error{Kind: ErrNoActiveSession, Message: "no session has been started"}
}

func SessionMismatch(msg string) *Error {
	return &Error{Kind: ErrSessionMismatch, Message: msg}
}

func UnknownUser(userID string) *Error {
	return &Error{Kind: ErrUnknownUser, Message: fmt.Sprintf("unknown user %q", userID)}
}

func Internal(err error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal error", Err: err}
}

// PersistenceWarning marks a snapshot write failure. The operation that
// caused it has still taken effect in memory; state and durable copy may
// diverge until the next successful snapshot.
func PersistenceWarning(err error) *Error {
	return &Error{Kind: ErrPersistence, Message: "session snapshot failed", Err: err}
}

// IsPersistenceWarning reports whether err is a snapshot-failure warning
// rather than a hard failure of the operation itself
func IsPersistenceWarning(err error) bool {
	if appErr, ok := err.(*Error); ok {
		return appErr.Kind == ErrPersistence
	}
	return false
}

// Wrap wraps an error with additional context
func Wrap(err error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
