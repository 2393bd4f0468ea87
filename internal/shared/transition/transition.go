// Package transition holds the error shared by the status machines.
package transition

import (
	"errors"
	"fmt"
)

// ErrInvalid matches any *Error via errors.Is.
var ErrInvalid = errors.New("invalid transition")

// Error reports a rejected status change. Entity names the machine ("document",
// "application", "contract").
type Error struct {
	Entity string
	From   string
	To     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: invalid transition %s -> %s", e.Entity, e.From, e.To)
}

// Is lets errors.Is(err, ErrInvalid) succeed.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// New builds an *Error for the given entity and statuses.
func New[S ~string](entity string, from, to S) *Error {
	return &Error{Entity: entity, From: string(from), To: string(to)}
}

// Label renders "from->to" for logs and request context.
func Label[S ~string](from, to S) string {
	return string(from) + "->" + string(to)
}
