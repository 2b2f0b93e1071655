package model

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by RequestError.Is so callers can branch with
// errors.Is instead of inspecting status codes.
var (
	ErrAuthFailure      = errors.New("authentication failure")
	ErrNotFound         = errors.New("not found")
	ErrTransportFailure = errors.New("transport failure")
	ErrDecodeFailure    = errors.New("decode failure")
)

// RequestError describes one failed request. Status is 0 for network-level
// failures. Body holds the raw response text, truncated for decode failures.
type RequestError struct {
	Kind   FailureKind
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *RequestError) Is(target error) bool {
	return target == kindSentinel(e.Kind)
}

func kindSentinel(kind FailureKind) error {
	switch kind {
	case FailureAuth:
		return ErrAuthFailure
	case FailureNotFound:
		return ErrNotFound
	case FailureTransport:
		return ErrTransportFailure
	case FailureDecode:
		return ErrDecodeFailure
	}
	return nil
}

// KindOf returns the failure kind carried by err, or "" if err is not a
// RequestError.
func KindOf(err error) FailureKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return ""
}

// EnvelopeError is returned when the server answered 2xx but the envelope
// reports success=false.
type EnvelopeError struct {
	Message string
}

func (e *EnvelopeError) Error() string {
	return e.Message
}
