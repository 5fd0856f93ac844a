package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrRequestFailed wraps any fatal failure in the chat pipeline. The
	// HTTP layer maps it to a generic 500; details stay in the logs.
	ErrRequestFailed = errors.New("request could not be processed")
)
