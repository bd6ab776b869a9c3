package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedResponse is returned when a success body does not have the documented shape.
var ErrUnexpectedResponse = errors.New("unexpected response shape")

// ShapeError is a 2xx response whose body did not decode. It matches
// ErrUnexpectedResponse under errors.Is.
type ShapeError struct {
	Detail string
}

func shapeError(format string, args ...any) *ShapeError {
	return &ShapeError{Detail: fmt.Sprintf(format, args...)}
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnexpectedResponse, e.Detail)
}

// StatusCode reports the success status the body arrived with.
func (e *ShapeError) StatusCode() int { return http.StatusOK }

func (e *ShapeError) Unwrap() error { return ErrUnexpectedResponse }

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	Status  int
	Message string // from {"message": ...} or {"error": ...}, may be empty
	Body    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error %d", e.Status)
}

// StatusCode returns the HTTP status.
func (e *HTTPError) StatusCode() int { return e.Status }

// BackendMessage returns the structured message from the error body.
func (e *HTTPError) BackendMessage() string { return e.Message }

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Method string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Method, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
