package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"leasing-backend/internal/flags"
	"leasing-backend/internal/shared/metrics"
	"leasing-backend/internal/shared/telemetry"
	"leasing-backend/internal/shared/transition"
)

// Service contains business logic for document records.
type Service struct {
	Repo  Repo
	Flags flags.Gate
	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

// CreateInput describes a file the client declared for upload.
type CreateInput struct {
	Owner OwnerScope
	Type  Type
	File  CandidateFile
}

// ReviewInput is a verification decision on a pending document.
type ReviewInput struct {
	Decision   Status
	ReviewedBy string
	Reason     string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Validate checks file against the policy of t and records the outcome.
func (s *Service) Validate(file CandidateFile, t Type) (ValidationResult, error) {
	result, err := Validate(file, t)
	if err != nil {
		telemetry.Error("documents.unknown_type", map[string]any{
			"doc_type": string(t),
			"file":     file.Name,
		})
		return ValidationResult{}, err
	}
	metrics.IncValidation(result.IsValid)
	metrics.ObserveFileSizeBytes(file.SizeBytes)
	return result, nil
}

// Create validates the declared file and records a pending document.
// A policy failure returns a *ValidationError. The returned result carries
// warnings for the accepted file.
func (s *Service) Create(ctx context.Context, in CreateInput) (Document, ValidationResult, error) {
	if !flags.Enabled(s.Flags, flags.DocumentUpload) {
		return Document{}, ValidationResult{}, ErrFeatureDisabled
	}
	in.Owner.ID = strings.TrimSpace(in.Owner.ID)
	if !in.Owner.Type.Valid() || in.Owner.ID == "" {
		return Document{}, ValidationResult{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	name, err := sanitizeFileName(in.File.Name)
	if err != nil {
		return Document{}, ValidationResult{}, err
	}
	in.File.Name = name

	result, err := s.Validate(in.File, in.Type)
	if err != nil {
		return Document{}, ValidationResult{}, err
	}
	if !result.IsValid {
		return Document{}, result, &ValidationError{Errors: result.Errors, Warnings: result.Warnings}
	}

	doc := Document{
		ID:            uuid.NewString(),
		OwnerType:     in.Owner.Type,
		OwnerID:       in.Owner.ID,
		Name:          in.File.Name,
		Type:          in.Type,
		Status:        StatusPending,
		UploadedAt:    s.now(),
		FileSizeBytes: in.File.SizeBytes,
		MimeType:      normalizeContentType(in.File.MimeType),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, ValidationResult{}, err
	}
	metrics.IncDocumentCreated()
	telemetry.Info("documents.created", map[string]any{
		"document_id": doc.ID,
		"doc_type":    string(doc.Type),
		"owner_type":  string(doc.OwnerType),
		"owner_id":    doc.OwnerID,
		"size_bytes":  doc.FileSizeBytes,
	})
	return doc, result, nil
}

// Get returns one document.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns the documents of an owner, newest first.
func (s *Service) List(ctx context.Context, owner OwnerScope) ([]Document, error) {
	if !owner.Type.Valid() || strings.TrimSpace(owner.ID) == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, owner)
}

// OwnerSummary is the completion view of one owner's documents.
type OwnerSummary struct {
	Summary         Summary `json:"summary"`
	MissingRequired []Type  `json:"missingRequired"`
}

// Summary aggregates the owner's documents at the current time.
func (s *Service) Summary(ctx context.Context, owner OwnerScope) (OwnerSummary, error) {
	docs, err := s.List(ctx, owner)
	if err != nil {
		return OwnerSummary{}, err
	}
	now := s.now()
	missing := MissingRequired(docs, owner.Type.Category(), now)
	if missing == nil {
		missing = []Type{}
	}
	return OwnerSummary{Summary: Summarize(docs, now), MissingRequired: missing}, nil
}

// Review verifies or rejects a pending document. The write only succeeds if
// the stored status is still the one the decision was checked against.
func (s *Service) Review(ctx context.Context, id string, in ReviewInput) (Document, error) {
	if !flags.Enabled(s.Flags, flags.DocumentReview) {
		return Document{}, ErrFeatureDisabled
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Decision == StatusRejected && in.Reason == "" {
		return Document{}, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if err := Transition(doc.Status, in.Decision); err != nil {
		metrics.IncTransitionRejected(entity, string(in.Decision))
		return Document{}, err
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, doc.Status, StatusUpdate{
		Status:          in.Decision,
		ReviewedBy:      in.ReviewedBy,
		ReviewedAt:      s.now(),
		RejectionReason: in.Reason,
	})
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			metrics.IncTransitionRejected(entity, string(in.Decision))
		}
		return Document{}, err
	}

	metrics.IncTransition(entity, string(in.Decision))
	telemetry.Info("documents.reviewed", map[string]any{
		"document_id":       id,
		"status_transition": transition.Label(doc.Status, in.Decision),
		"reviewed_by":       in.ReviewedBy,
	})
	return updated, nil
}
