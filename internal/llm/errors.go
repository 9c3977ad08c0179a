package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by clients
var (
	ErrMissingAPIKey = errors.New("API key is required")
	ErrEmptyResponse = errors.New("no text in model response")
)

// Error wraps a provider failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
