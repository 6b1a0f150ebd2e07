package domain

import "errors"

// Kind classifies an error for the transport boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindBadInput
	KindUnauthorized
	KindNotFound
	KindConflict
	// KindRejected is a payment that failed verification: bad signature or not paid.
	KindRejected
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "bad_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRejected:
		return "rejected"
	case KindUpstream:
		return "upstream"
	}
	return "internal"
}

// Error carries a Kind and a message that is safe to return to callers.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func BadInput(msg string) *Error     { return newError(KindBadInput, msg, nil) }
func Unauthorized(msg string) *Error { return newError(KindUnauthorized, msg, nil) }
func NotFound(msg string) *Error     { return newError(KindNotFound, msg, nil) }
func Conflict(msg string) *Error     { return newError(KindConflict, msg, nil) }
func Rejected(msg string) *Error     { return newError(KindRejected, msg, nil) }

func Upstream(msg string, err error) *Error { return newError(KindUpstream, msg, err) }
func Internal(msg string, err error) *Error { return newError(KindInternal, msg, err) }

// KindOf returns the Kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the public message of err. Internal errors get a generic text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindUpstream && e.Err != nil {
			return e.Msg + ": " + e.Err.Error()
		}
		if e.Kind != KindInternal {
			return e.Msg
		}
	}
	return "internal server error"
}
