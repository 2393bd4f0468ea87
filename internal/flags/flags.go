// Package flags implements the process-wide feature flag store.
//
// A Store is built once at startup by Load, which merges compiled defaults,
// environment overrides and persisted overrides in that order. Services receive
// the Store explicitly; nothing reads flags from globals.
package flags

import "errors"

// Flag names a feature toggle.
type Flag string

const (
	DocumentUpload     Flag = "document_upload"
	DocumentReview     Flag = "document_review"
	ExpirationTracking Flag = "expiration_tracking"
	ApplicationReview  Flag = "application_review"
	ContractWorkflow   Flag = "contract_workflow"
	AutoContractDraft  Flag = "auto_contract_draft"
	Offers             Flag = "offers"
	Messaging          Flag = "messaging"
)

var (
	ErrUnknownFlag = errors.New("unknown flag")
)

// defaults are the compiled-in values; the slice order is the listing order.
var defaults = []struct {
	flag    Flag
	enabled bool
}{
	{DocumentUpload, true},
	{DocumentReview, true},
	{ExpirationTracking, true},
	{ApplicationReview, true},
	{ContractWorkflow, true},
	{AutoContractDraft, true},
	{Offers, false},
	{Messaging, false},
}

// Defaults returns the compiled-in flag values.
func Defaults() map[Flag]bool {
	out := make(map[Flag]bool, len(defaults))
	for _, d := range defaults {
		out[d.flag] = d.enabled
	}
	return out
}

// All lists every known flag in stable order.
func All() []Flag {
	out := make([]Flag, 0, len(defaults))
	for _, d := range defaults {
		out = append(out, d.flag)
	}
	return out
}

// Known reports whether f is a declared flag.
func Known(f Flag) bool {
	for _, d := range defaults {
		if d.flag == f {
			return true
		}
	}
	return false
}

// Gate is the read side of the store that services depend on.
type Gate interface {
	IsEnabled(f Flag) bool
}

// Enabled reports whether f is on. A nil gate leaves every feature enabled.
func Enabled(g Gate, f Flag) bool {
	if g == nil {
		return true
	}
	return g.IsEnabled(f)
}
