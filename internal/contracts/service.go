package contracts

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

// Service contains business logic for contracts.
type Service struct {
	Repo  Repo
	Flags flags.Gate
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateDraft opens a draft contract for an approved application. Each
// application has at most one contract.
func (s *Service) CreateDraft(ctx context.Context, applicationID, propertyID string) (Contract, error) {
	if !flags.Enabled(s.Flags, flags.ContractWorkflow) {
		return Contract{}, ErrFeatureDisabled
	}
	applicationID = strings.TrimSpace(applicationID)
	propertyID = strings.TrimSpace(propertyID)
	if applicationID == "" || propertyID == "" {
		return Contract{}, fmt.Errorf("%w: application and property are required", ErrInvalidInput)
	}

	c := Contract{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		PropertyID:    propertyID,
		Status:        StatusDraft,
		CreatedAt:     s.now(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Contract{}, err
	}
	telemetry.Info("contracts.draft_created", map[string]any{
		"contract_id":    c.ID,
		"application_id": applicationID,
		"property_id":    propertyID,
	})
	return c, nil
}

// DraftForApprovedApplication is the approval hook. It is a no-op when
// automatic drafting is off or a contract already exists.
func (s *Service) DraftForApprovedApplication(ctx context.Context, applicationID, propertyID string) error {
	if !flags.Enabled(s.Flags, flags.AutoContractDraft) {
		return nil
	}
	_, err := s.CreateDraft(ctx, applicationID, propertyID)
	if errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrFeatureDisabled) {
		return nil
	}
	return err
}

// Get returns one contract.
func (s *Service) Get(ctx context.Context, id string) (Contract, error) {
	if strings.TrimSpace(id) == "" {
		return Contract{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// GetByApplication returns the contract generated for an application.
func (s *Service) GetByApplication(ctx context.Context, applicationID string) (Contract, error) {
	if strings.TrimSpace(applicationID) == "" {
		return Contract{}, ErrInvalidInput
	}
	return s.Repo.GetByApplication(ctx, applicationID)
}

// ChangeStatus moves a contract from current to to. current is the status the
// caller last saw; a mismatch with the stored status is ErrStatusConflict.
func (s *Service) ChangeStatus(ctx context.Context, id string, current, to Status) (Contract, error) {
	if !flags.Enabled(s.Flags, flags.ContractWorkflow) {
		return Contract{}, ErrFeatureDisabled
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return Contract{}, err
	}
	if c.Status != current {
		return Contract{}, ErrStatusConflict
	}

	next := c
	if err := Apply(&next, to, s.now()); err != nil {
		metrics.IncTransitionRejected(entity, string(to))
		return Contract{}, err
	}
	updated, err := s.Repo.UpdateStatus(ctx, next, current)
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			metrics.IncTransitionRejected(entity, string(to))
		}
		return Contract{}, err
	}

	metrics.IncTransition(entity, string(to))
	telemetry.Info("contracts.status_changed", map[string]any{
		"contract_id":       id,
		"application_id":    c.ApplicationID,
		"status_transition": transition.Label(current, to),
	})
	return updated, nil
}
