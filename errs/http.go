package errs

import (
	"net/http"
)

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError is the InvalidArgument case: malformed ids, bad JSON, failed validation.
func NewBadRequestError(message string, errors []FieldError) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message)
	err.Errors = errors
	return err
}

func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

func NewConflictError(message string) *HTTPError {
	return newHTTPError(http.StatusConflict, message)
}

// NewInternalServerError hides the cause behind the generic status text.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// NewInternalServerErrorWithMessage is for failures whose message is safe to show,
// such as a payment gateway decline.
func NewInternalServerErrorWithMessage(message string) *HTTPError {
	return newHTTPError(http.StatusInternalServerError, message)
}

func NewServiceUnavailableError(message string) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, message)
}
