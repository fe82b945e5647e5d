package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the JSON error envelope.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodePersistence     = "PERSISTENCE_ERROR"
	CodePaymentDeclined = "PAYMENT_DECLINED"
	CodePaymentOrphaned = "PAYMENT_ORPHANED"
	CodeNotFound        = "NOT_FOUND"
)

type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to the status the handlers respond with.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodePaymentDeclined:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// As unwraps err into an *Error if it carries one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
