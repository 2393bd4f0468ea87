package documents

import "context"

// Repo defines persistence operations for document records.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	ListByOwner(ctx context.Context, scope OwnerScope) ([]Document, error)
	// UpdateStatus applies update only if the stored status still equals from.
	// It returns ErrStatusConflict when another writer changed it first.
	UpdateStatus(ctx context.Context, id string, from Status, update StatusUpdate) (Document, error)
}
