package agent

import "errors"

// Sentinel errors for the agent layer
var (
	// Classification errors
	ErrClassificationFailed  = errors.New("failed to classify message")
	ErrInvalidClassification = errors.New("unrecognized classification result")

	// Generation errors
	ErrGenerationFailed = errors.New("failed to generate response")
)
