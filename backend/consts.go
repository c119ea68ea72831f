package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBackendUnreachable - the request never reached the backend
	ErrBackendUnreachable = errors.New("backend not reachable")
)

// RequestError carries the status and the backend-supplied message of a
// non-success answer
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
}

// IsConflict returns true when err is a backend answer with status 409
func IsConflict(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}

	return reqErr.StatusCode == http.StatusConflict
}
