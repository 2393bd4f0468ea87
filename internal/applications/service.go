package applications

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"leasing-backend/internal/flags"
	"leasing-backend/internal/shared/metrics"
	"leasing-backend/internal/shared/telemetry"
	"leasing-backend/internal/shared/transition"
)

// ApprovalHook runs after an approval has been persisted.
type ApprovalHook func(ctx context.Context, app Application) error

// Service contains business logic for rental applications.
type Service struct {
	Repo  Repo
	Flags flags.Gate
	// OnApproved is optional. Its failure is logged and does not undo the
	// approval.
	OnApproved ApprovalHook
	Now        func() time.Time
}

// SubmitInput is a new application as sent by the applicant.
type SubmitInput struct {
	PropertyID  string
	ApplicantID string
	GuarantorID string
	Message     string
	Snapshot    Snapshot
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Submit records a pending application with a frozen profile snapshot.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Application, error) {
	in.PropertyID = strings.TrimSpace(in.PropertyID)
	in.ApplicantID = strings.TrimSpace(in.ApplicantID)
	if in.PropertyID == "" || in.ApplicantID == "" {
		return Application{}, fmt.Errorf("%w: property and applicant are required", ErrInvalidInput)
	}

	snapshot, err := normalizeSnapshot(in.Snapshot)
	if err != nil {
		return Application{}, err
	}
	if snapshot.Guarantor != nil && strings.TrimSpace(in.GuarantorID) == "" {
		return Application{}, fmt.Errorf("%w: guarantorId is required with a guarantor profile", ErrInvalidInput)
	}

	existing, err := s.Repo.ListByProperty(ctx, in.PropertyID)
	if err != nil {
		return Application{}, err
	}
	for _, app := range existing {
		if app.ApplicantID == in.ApplicantID && app.Status == StatusPending {
			return Application{}, ErrDuplicate
		}
	}

	app := Application{
		ID:          uuid.NewString(),
		PropertyID:  in.PropertyID,
		ApplicantID: in.ApplicantID,
		GuarantorID: strings.TrimSpace(in.GuarantorID),
		Status:      StatusPending,
		Message:     strings.TrimSpace(in.Message),
		Snapshot:    snapshot,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	telemetry.Info("applications.submitted", map[string]any{
		"application_id": app.ID,
		"property_id":    app.PropertyID,
		"applicant_id":   app.ApplicantID,
		"has_guarantor":  app.Snapshot.Guarantor != nil,
	})
	return app, nil
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	if strings.TrimSpace(id) == "" {
		return Application{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// ListByProperty returns the applications received by a property.
func (s *Service) ListByProperty(ctx context.Context, propertyID string) ([]Application, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByProperty(ctx, propertyID)
}

// Decide approves or rejects a pending application on behalf of actor.
func (s *Service) Decide(ctx context.Context, id string, to Status, actor Actor) (Application, error) {
	if !flags.Enabled(s.Flags, flags.ApplicationReview) {
		return Application{}, ErrFeatureDisabled
	}
	app, err := s.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if err := Transition(app.Status, to, actor); err != nil {
		metrics.IncTransitionRejected(entity, string(to))
		return Application{}, err
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, app.Status, to, actor.ID, s.now())
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			metrics.IncTransitionRejected(entity, string(to))
		}
		return Application{}, err
	}
	metrics.IncTransition(entity, string(to))
	telemetry.Info("applications.decided", map[string]any{
		"application_id":    id,
		"status_transition": transition.Label(app.Status, to),
		"decided_by":        actor.ID,
		"role":              string(actor.Role),
	})

	if to == StatusApproved && s.OnApproved != nil {
		if err := s.OnApproved(ctx, updated); err != nil {
			telemetry.Error("applications.on_approved_failed", map[string]any{
				"application_id": id,
				"error":          err,
			})
		}
	}
	return updated, nil
}

func normalizeSnapshot(in Snapshot) (Snapshot, error) {
	applicant, err := normalizeProfile(in.Applicant, "applicant")
	if err != nil {
		return Snapshot{}, err
	}
	out := Snapshot{Applicant: applicant}
	if in.Guarantor != nil {
		g, err := normalizeProfile(*in.Guarantor, "guarantor")
		if err != nil {
			return Snapshot{}, err
		}
		out.Guarantor = &g
	}
	return out, nil
}

func normalizeProfile(p Profile, who string) (Profile, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.FullName == "" {
		return Profile{}, fmt.Errorf("%w: %s full name is required", ErrInvalidInput, who)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return Profile{}, fmt.Errorf("%w: %s email is invalid", ErrInvalidInput, who)
	}
	if p.MonthlyIncome < 0 {
		return Profile{}, fmt.Errorf("%w: %s monthly income must not be negative", ErrInvalidInput, who)
	}
	rut, err := NormalizeRUT(p.RUT)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", who, err)
	}
	p.RUT = rut
	return p, nil
}
