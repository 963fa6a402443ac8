package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error that carries the HTTP status it should be reported with.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func New(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func BadRequest(format string, args ...interface{}) *APIError {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...interface{}) *APIError {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

// Status returns the status code carried by err, or 500 for anything else.
func Status(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Pre-defined error types
var (
	ErrInvalidID = BadRequest("Invalid ID format")
)
