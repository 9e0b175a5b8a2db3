package httpserver

import "errors"

var (
	// ErrStart indicates the listener could not be started.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates in-flight requests did not drain before the deadline.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
