package applications

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidRUT      = errors.New("invalid rut")
	ErrDuplicate       = errors.New("pending application already exists")
	ErrForbiddenActor  = errors.New("actor may not decide this application")
	ErrStatusConflict  = errors.New("status changed concurrently")
	ErrFeatureDisabled = errors.New("feature disabled")
)
