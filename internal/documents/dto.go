package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
// Expiry fields are only present when expiration tracking is on and the
// type expires.
type DocumentResponse struct {
	ID              string     `json:"id"`
	OwnerType       OwnerType  `json:"ownerType"`
	OwnerID         string     `json:"ownerId"`
	Name            string     `json:"name"`
	Type            Type       `json:"type"`
	Label           string     `json:"label,omitempty"`
	Category        Category   `json:"category,omitempty"`
	Status          Status     `json:"status"`
	UploadedAt      time.Time  `json:"uploadedAt"`
	FileSizeBytes   int64      `json:"fileSizeBytes"`
	MimeType        string     `json:"mimeType"`
	VerifiedAt      *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy      string     `json:"verifiedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	IsExpired       *bool      `json:"isExpired,omitempty"`
	DaysUntilExpiry *int       `json:"daysUntilExpiry,omitempty"`
}

func toResponse(doc Document, now time.Time, trackExpiry bool) DocumentResponse {
	resp := DocumentResponse{
		ID:              doc.ID,
		OwnerType:       doc.OwnerType,
		OwnerID:         doc.OwnerID,
		Name:            doc.Name,
		Type:            doc.Type,
		Status:          doc.Status,
		UploadedAt:      doc.UploadedAt,
		FileSizeBytes:   doc.FileSizeBytes,
		MimeType:        doc.MimeType,
		VerifiedAt:      doc.VerifiedAt,
		VerifiedBy:      doc.VerifiedBy,
		RejectionReason: doc.RejectionReason,
	}

	cfg, err := Resolve(doc.Type)
	if err != nil {
		return resp
	}
	resp.Label = cfg.Label
	resp.Category = cfg.Category
	if !trackExpiry {
		return resp
	}
	if exp, ok := expiresAtFor(doc.UploadedAt, cfg); ok {
		expired := isExpiredFor(doc.UploadedAt, cfg, now)
		remaining, _, _ := DaysUntilExpiry(doc.UploadedAt, doc.Type, now)
		resp.ExpiresAt = &exp
		resp.IsExpired = &expired
		resp.DaysUntilExpiry = &remaining
	}
	return resp
}

// TypeResponse renders one registry entry.
type TypeResponse struct {
	Type                Type     `json:"type"`
	Label               string   `json:"label"`
	Description         string   `json:"description"`
	Category            Category `json:"category"`
	MaxSizeBytes        int64    `json:"maxSizeBytes"`
	MaxSizeLabel        string   `json:"maxSizeLabel"`
	AllowedContentTypes []string `json:"allowedContentTypes"`
	Extensions          []string `json:"extensions"`
	Required            bool     `json:"required"`
	ExpiresAfterDays    *int     `json:"expiresAfterDays,omitempty"`
}

func toTypeResponse(cfg TypeConfig) TypeResponse {
	return TypeResponse{
		Type:                cfg.Type,
		Label:               cfg.Label,
		Description:         cfg.Description,
		Category:            cfg.Category,
		MaxSizeBytes:        cfg.MaxSizeBytes,
		MaxSizeLabel:        formatMB(cfg.MaxSizeBytes),
		AllowedContentTypes: cfg.AllowedContentTypes,
		Extensions:          cfg.Extensions(),
		Required:            cfg.Required,
		ExpiresAfterDays:    cfg.ExpiresAfterDays,
	}
}

type validateRequest struct {
	Type Type          `json:"type"`
	File CandidateFile `json:"file"`
}

type createRequest struct {
	OwnerType OwnerType     `json:"ownerType"`
	OwnerID   string        `json:"ownerId"`
	Type      Type          `json:"type"`
	File      CandidateFile `json:"file"`
}

type createResponse struct {
	Document DocumentResponse `json:"document"`
	Warnings []string         `json:"warnings"`
}

type reviewRequest struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}
