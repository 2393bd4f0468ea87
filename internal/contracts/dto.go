package contracts

import "time"

// ContractResponse is the outward-facing representation of a contract.
type ContractResponse struct {
	ID                string     `json:"id"`
	ApplicationID     string     `json:"applicationId"`
	PropertyID        string     `json:"propertyId"`
	Status            Status     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	SentToSignatureAt *time.Time `json:"sentToSignatureAt,omitempty"`
	FullySignedAt     *time.Time `json:"fullySignedAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
}

func toResponse(c Contract) ContractResponse {
	return ContractResponse{
		ID:                c.ID,
		ApplicationID:     c.ApplicationID,
		PropertyID:        c.PropertyID,
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
		ApprovedAt:        c.ApprovedAt,
		SentToSignatureAt: c.SentToSignatureAt,
		FullySignedAt:     c.FullySignedAt,
		CancelledAt:       c.CancelledAt,
	}
}

type statusRequest struct {
	Current Status `json:"currentStatus"`
	Status  Status `json:"status"`
}
