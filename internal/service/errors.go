package service

import "errors"

// Kind classifies a failed operation.
type Kind int

const (
	// KindExecution covers spawn, wait and decoding failures.
	KindExecution Kind = iota
	// KindTimeout means the child outlived its timeout and was killed.
	KindTimeout
	// KindInvalid means the request was rejected before anything ran.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindExecution:
		return "execution"
	case KindTimeout:
		return "timeout"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error is returned by Service operations. Message is suitable for callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindExecution for errors not produced
// by this package.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindExecution
}

func invalid(msg string) *Error {
	return &Error{Kind: KindInvalid, Message: msg}
}
