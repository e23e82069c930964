package brain

import (
	"errors"
	"fmt"
)

// ErrConcurrentRequest is returned when a send is attempted while another
// request is still in flight. Callers drop it silently; the pending call will
// still settle.
var ErrConcurrentRequest = errors.New("funnel request already in flight")

// BackendError carries a non-2xx reply from the funnel backend.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError wraps a network or decoding failure before a usable reply
// was obtained.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
