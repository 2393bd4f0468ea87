package contracts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasing-backend/internal/flags"
	"leasing-backend/internal/shared/transition"
)

type gate map[flags.Flag]bool

func (g gate) IsEnabled(f flags.Flag) bool { return g[f] }

func newService(g flags.Gate) *Service {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	return &Service{Repo: NewMemoryRepo(), Flags: g, Now: func() time.Time { return now }}
}

func TestDirectJumpToSignatureIsRejected(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	c, err := svc.CreateDraft(ctx, "app-1", "property-1")
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, c.ID, StatusDraft, StatusSentToSignature)
	assert.ErrorIs(t, err, transition.ErrInvalid)

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, stored.Status)
}

func TestChangeStatusFullLifecycle(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	c, err := svc.CreateDraft(ctx, "app-1", "property-1")
	require.NoError(t, err)

	current := StatusDraft
	for _, to := range []Status{StatusApproved, StatusSentToSignature, StatusPartiallySigned, StatusFullySigned} {
		updated, err := svc.ChangeStatus(ctx, c.ID, current, to)
		require.NoError(t, err, "%s -> %s", current, to)
		assert.Equal(t, to, updated.Status)
		current = to
	}

	stored, err := svc.GetByApplication(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, StatusFullySigned, stored.Status)
	assert.NotNil(t, stored.ApprovedAt)
	assert.NotNil(t, stored.SentToSignatureAt)
	assert.NotNil(t, stored.FullySignedAt)

	_, err = svc.ChangeStatus(ctx, c.ID, StatusFullySigned, StatusCancelled)
	assert.ErrorIs(t, err, transition.ErrInvalid)
}

func TestChangeStatusStaleCurrent(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	c, err := svc.CreateDraft(ctx, "app-1", "property-1")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, c.ID, StatusDraft, StatusApproved)
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, c.ID, StatusDraft, StatusCancelled)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestCreateDraftOncePerApplication(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	_, err := svc.CreateDraft(ctx, "app-1", "property-1")
	require.NoError(t, err)

	_, err = svc.CreateDraft(ctx, "app-1", "property-1")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, svc.DraftForApprovedApplication(ctx, "app-1", "property-1"))
}

func TestDraftForApprovedApplicationRespectsFlags(t *testing.T) {
	ctx := context.Background()

	off := newService(gate{flags.ContractWorkflow: true})
	require.NoError(t, off.DraftForApprovedApplication(ctx, "app-1", "property-1"))
	_, err := off.GetByApplication(ctx, "app-1")
	assert.ErrorIs(t, err, ErrNotFound)

	on := newService(gate{flags.ContractWorkflow: true, flags.AutoContractDraft: true})
	require.NoError(t, on.DraftForApprovedApplication(ctx, "app-1", "property-1"))
	c, err := on.GetByApplication(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, c.Status)
}

func TestChangeStatusDisabled(t *testing.T) {
	svc := newService(gate{})
	_, err := svc.ChangeStatus(context.Background(), "c-1", StatusDraft, StatusApproved)
	assert.ErrorIs(t, err, ErrFeatureDisabled)
}
