package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/jobfit/internal/bullets"
	"github.com/jonathan/jobfit/internal/types"
)

// Sentinel errors returned by stores and the library
var (
	ErrNotFound    = errors.New("library item not found")
	ErrDuplicateID = errors.New("library item already exists")
)

// RejectedError is returned when a statement fails validation on insert or update
type RejectedError struct {
	Validation types.ValidationResult
}

func (e *RejectedError) Error() string {
	if len(e.Validation.Errors) == 0 {
		return fmt.Sprintf("statement failed validation: quality score %d below %d", e.Validation.QualityScore, bullets.MinValidScore)
	}
	return "statement failed validation: " + strings.Join(e.Validation.Errors, ", ")
}

// Error wraps a backing store failure
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
