package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Document // id -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Document),
	}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.ID] = doc
	return nil
}

// GetByID returns a document by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListByOwner returns the owner's documents, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, scope OwnerScope) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Document, 0)
	for _, doc := range r.data {
		if doc.OwnerType == scope.Type && doc.OwnerID == scope.ID {
			out = append(out, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

// UpdateStatus writes a review decision if the stored status is still from.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, from Status, update StatusUpdate) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	if doc.Status != from {
		return Document{}, ErrStatusConflict
	}
	applyUpdate(&doc, update)
	r.data[id] = doc
	return doc, nil
}

func applyUpdate(doc *Document, update StatusUpdate) {
	doc.Status = update.Status
	switch update.Status {
	case StatusVerified:
		at := update.ReviewedAt
		doc.VerifiedAt = &at
		doc.VerifiedBy = update.ReviewedBy
		doc.RejectionReason = ""
	case StatusRejected:
		doc.RejectionReason = update.RejectionReason
		doc.VerifiedBy = update.ReviewedBy
	case StatusPending:
	}
}

var _ Repo = (*MemoryRepo)(nil)
