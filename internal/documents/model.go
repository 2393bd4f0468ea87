package documents

import "time"

// Status is the review state of an uploaded document.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	default:
		return false
	}
}

// OwnerType scopes a document to the record it belongs to.
type OwnerType string

const (
	OwnerApplicant   OwnerType = "applicant"
	OwnerGuarantor   OwnerType = "guarantor"
	OwnerProperty    OwnerType = "property"
	OwnerApplication OwnerType = "application"
)

// Valid reports whether o is a known owner type.
func (o OwnerType) Valid() bool {
	switch o {
	case OwnerApplicant, OwnerGuarantor, OwnerProperty, OwnerApplication:
		return true
	default:
		return false
	}
}

// OwnerScope identifies the set of documents fetched together.
type OwnerScope struct {
	Type OwnerType
	ID   string
}

// Document represents an uploaded document record.
type Document struct {
	ID              string
	OwnerType       OwnerType
	OwnerID         string
	Name            string
	Type            Type
	Status          Status
	UploadedAt      time.Time
	FileSizeBytes   int64
	MimeType        string
	VerifiedAt      *time.Time
	VerifiedBy      string
	RejectionReason string
}

// CandidateFile is the declared metadata of a file about to be uploaded.
type CandidateFile struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
}

// ValidationResult is the outcome of checking a CandidateFile against a policy.
// IsValid is true exactly when Errors is empty.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// StatusUpdate carries the fields written by a review.
type StatusUpdate struct {
	Status          Status
	ReviewedBy      string
	ReviewedAt      time.Time
	RejectionReason string
}

// Category is the registry category whose required types apply to the owner.
func (o OwnerType) Category() Category {
	switch o {
	case OwnerGuarantor:
		return CategoryGuarantor
	case OwnerProperty:
		return CategoryProperty
	default:
		return CategoryApplicant
	}
}
