package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("prompt service not started")
)
