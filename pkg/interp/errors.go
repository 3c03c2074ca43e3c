package interp

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrBadInput          = errors.New("invalid integer input")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrNegativeExponent  = errors.New("negative exponent")
	ErrStepLimit         = errors.New("step limit exceeded")
	ErrMalformedProgram  = errors.New("malformed program")
	ErrOutputFailed      = errors.New("output failed")
	ErrInputFailed       = errors.New("input failed")
)

// RuntimeError is a fault raised while executing a program. Err is one of
// the sentinel errors above, so callers can match with errors.Is.
type RuntimeError struct {
	Err    error
	Line   int // source line, 0 when unknown
	Detail string
}

func (e *RuntimeError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
