package errors

import (
	"errors"
	"fmt"
)

// Re-exported standard helpers so callers need only this package
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// appError is the only Error implementation
type appError struct {
	code    ErrorCode
	message string
	cause   error
	data    any
}

func (e *appError) Error() string {
	msg := e.message
	if msg == "" {
		msg = GetErrorMessage(e.code)
	}

	switch {
	case e.data != nil:
		return fmt.Sprintf("%s: %v", msg, e.data)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", msg, e.cause)
	default:
		return msg
	}
}

func (e *appError) Code() ErrorCode { return e.code }
func (e *appError) Unwrap() error   { return e.cause }

type defaultFactory struct{}

func (*defaultFactory) New(code ErrorCode) Error {
	return &appError{code: code}
}

func (*defaultFactory) Wrap(code ErrorCode, err error) Error {
	return &appError{code: code, cause: err}
}

func (*defaultFactory) WithMessage(code ErrorCode, msg string) Error {
	return &appError{code: code, message: msg}
}

func (*defaultFactory) WithData(code ErrorCode, data any) Error {
	return &appError{code: code, data: data}
}

// New creates a Factory instance for error creation
func New() Factory {
	return &defaultFactory{}
}

// HasCode reports whether any error in the chain carries the given code
func HasCode(err error, code ErrorCode) bool {
	var appErr Error
	for As(err, &appErr) {
		if appErr.Code() == code {
			return true
		}
		err = appErr.Unwrap()
	}

	return false
}
