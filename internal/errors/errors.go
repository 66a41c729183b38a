// Package errors defines the coded error type shared by the gateway
// components. Every failure that crosses a component boundary carries one
// of the codes in codes.go.
package errors

import (
	"errors"
	"fmt"
)

// Standard library helpers, re-exported so callers need a single import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Error is a classified gateway failure.
type Error struct {
	Code    Code
	Message string
	// Data is the offending value, if any (e.g. a rejected intent).
	Data any
	Err  error
}

// New returns an Error with the default message for code.
func New(code Code) *Error {
	return &Error{Code: code, Message: Message(code)}
}

// Newf returns an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under code.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Message: Message(code), Err: err}
}

// WithData returns a copy of e carrying data.
func (e *Error) WithData(data any) *Error {
	cp := *e
	cp.Data = data
	return &cp
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = Message(e.Code)
	}

	switch {
	case e.Data != nil && e.Err != nil:
		return fmt.Sprintf("%s (%v): %v", msg, e.Data, e.Err)
	case e.Data != nil:
		return fmt.Sprintf("%s: %v", msg, e.Data)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error with the same code, so
// errors.Is(err, errors.New(ErrEmptyInput)) works through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrInternal
}

// From returns err as an *Error, classifying unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(ErrInternal, err)
}
