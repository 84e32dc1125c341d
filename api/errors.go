package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when a request still gets a 401 after a
// refresh attempt. The UI routes back to the login screen on this error.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError is a non-2xx response from a resource endpoint.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Body)
}
