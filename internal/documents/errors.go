package documents

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrValidationFailed    = errors.New("validation failed")
	ErrStatusConflict      = errors.New("status changed concurrently")
	ErrFeatureDisabled     = errors.New("feature disabled")
)

// ValidationError carries the policy errors of a rejected CandidateFile.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
