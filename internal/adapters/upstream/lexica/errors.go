package lexica

import (
	"errors"
	"fmt"
)

// Sentinel kinds for upstream errors.
var (
	// ErrUpstreamUnreachable covers every failure to obtain a usable
	// response: transport errors and non-success statuses alike.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	ErrTransport           = errors.New("upstream transport failed")
	ErrUpstreamStatus      = errors.New("upstream returned non-success status")

	// ErrInternal covers malformed responses and request construction failures.
	ErrInternal = errors.New("upstream response processing failed")
)

// StatusError carries the status code of a non-2xx upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUpstreamStatus, e.StatusCode)
}

// Unwrap lets errors.Is match both ErrUpstreamStatus and ErrUpstreamUnreachable.
func (e *StatusError) Unwrap() []error {
	return []error{ErrUpstreamStatus, ErrUpstreamUnreachable}
}
