package errors

import (
	"fmt"
	"net/http"
)

// HTTPError is an error that carries the HTTP status and user-facing message
// a delivery layer should render.
type HTTPError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewHTTPError builds an HTTPError whose application code equals the HTTP status.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Code: status, Message: message, StatusCode: status}
}

// NewHTTPErrorWithCode builds an HTTPError with a distinct application code.
func NewHTTPErrorWithCode(status, code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, StatusCode: status}
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not found")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, "too many requests")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")
)
