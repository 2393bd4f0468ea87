package contracts

import "time"

// Status is the lifecycle state of a rental contract.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusApproved        Status = "approved"
	StatusSentToSignature Status = "sent_to_signature"
	StatusPartiallySigned Status = "partially_signed"
	StatusFullySigned     Status = "fully_signed"
	StatusCancelled       Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusSentToSignature, StatusPartiallySigned, StatusFullySigned, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusFullySigned || s == StatusCancelled
}

// Contract is the lease generated from an approved application. Each *At
// field is set when its status is first entered and never cleared.
type Contract struct {
	ID                string
	ApplicationID     string
	PropertyID        string
	Status            Status
	CreatedAt         time.Time
	ApprovedAt        *time.Time
	SentToSignatureAt *time.Time
	FullySignedAt     *time.Time
	CancelledAt       *time.Time
}
