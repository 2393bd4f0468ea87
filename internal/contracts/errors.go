package contracts

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyExists   = errors.New("contract already exists for application")
	ErrStatusConflict  = errors.New("status changed concurrently")
	ErrFeatureDisabled = errors.New("feature disabled")
)
