package contracts

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu            sync.RWMutex
	data          map[string]Contract
	byApplication map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:          make(map[string]Contract),
		byApplication: make(map[string]string),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, c Contract) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byApplication[c.ApplicationID]; ok {
		return ErrAlreadyExists
	}
	r.data[c.ID] = c
	r.byApplication[c.ApplicationID] = c.ID
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Contract, error) {
	if err := ctx.Err(); err != nil {
		return Contract{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.data[id]
	if !ok {
		return Contract{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) GetByApplication(ctx context.Context, applicationID string) (Contract, error) {
	if err := ctx.Err(); err != nil {
		return Contract{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byApplication[applicationID]
	if !ok {
		return Contract{}, ErrNotFound
	}
	return r.data[id], nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, c Contract, from Status) (Contract, error) {
	if err := ctx.Err(); err != nil {
		return Contract{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.data[c.ID]
	if !ok {
		return Contract{}, ErrNotFound
	}
	if stored.Status != from {
		return Contract{}, ErrStatusConflict
	}
	stored.Status = c.Status
	stored.ApprovedAt = c.ApprovedAt
	stored.SentToSignatureAt = c.SentToSignatureAt
	stored.FullySignedAt = c.FullySignedAt
	stored.CancelledAt = c.CancelledAt
	r.data[c.ID] = stored
	return stored, nil
}

var _ Repo = (*MemoryRepo)(nil)
