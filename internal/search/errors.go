package search

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes search condition failures.
type ErrorCode string

const (
	// ErrCodeUnknownOperator indicates an operator tag outside the supported
	// set. Only reported by strict builders.
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeMalformedRange indicates a daterange term that does not split
	// into two parts or whose parts are not date/time literals.
	ErrCodeMalformedRange ErrorCode = "MALFORMED_RANGE"
)

// Sentinel errors for use with errors.Is.
var (
	ErrUnknownOperator = errors.New("unknown operator")
	ErrMalformedRange  = errors.New("malformed range term")
)

// Error is a search condition failure with structured context.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field and Term identify the offending criterion. Set when the error
	// passes through Builder.Apply.
	Field string
	Term  any

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s, term=%q)", e.Code, msg, e.Field, fmt.Sprint(e.Term))
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's code.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case ErrCodeUnknownOperator:
		return target == ErrUnknownOperator
	case ErrCodeMalformedRange:
		return target == ErrMalformedRange
	default:
		return false
	}
}

// IsMalformedRange returns true if err is a malformed daterange failure.
// Uses errors.As to handle wrapped errors.
func IsMalformedRange(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeMalformedRange
	}
	return false
}

// IsUnknownOperator returns true if err reports an unsupported operator.
func IsUnknownOperator(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnknownOperator
	}
	return false
}

func malformedRange(message string, cause error) *Error {
	return &Error{Code: ErrCodeMalformedRange, Message: message, Err: cause}
}

func unknownOperator(op Operator) *Error {
	return &Error{
		Code:    ErrCodeUnknownOperator,
		Message: fmt.Sprintf("operator %q is not supported", string(op)),
	}
}
