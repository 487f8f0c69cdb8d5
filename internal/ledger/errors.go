package ledger

import (
	"errors"
	"strings"
)

// ErrorCode is the closed set of domain failure categories every ledger
// operation reports through.
type ErrorCode string

const (
	CodeNone                 ErrorCode = "none"
	CodeValidationError      ErrorCode = "validation_error"
	CodeCustomerNotFound     ErrorCode = "customer_not_found"
	CodeEmployeeNotFound     ErrorCode = "employee_not_found"
	CodeAuthenticationFailed ErrorCode = "authentication_failed"
	CodeInsufficientFunds    ErrorCode = "insufficient_funds"
	CodeInternalError        ErrorCode = "internal_error"
)

// Error carries a code and an ordered list of messages. Services return it
// in place of a payload, never alongside one.
type Error struct {
	Code     ErrorCode
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func NewError(code ErrorCode, messages ...string) *Error {
	return &Error{Code: code, Messages: messages}
}

// internalError wraps an unexpected failure, keeping the cause's message
// visible to the caller.
func internalError(messages ...string) *Error {
	return &Error{Code: CodeInternalError, Messages: messages}
}

// AsError normalizes any error into a *Error; unrecognized errors become
// internal errors carrying the original message.
func AsError(err error) *Error {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr
	}
	return internalError(err.Error())
}
