package applications

import (
	"context"
	"time"
)

// Repo defines persistence operations for applications.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	ListByProperty(ctx context.Context, propertyID string) ([]Application, error)
	// UpdateStatus records a decision if the stored status is still from.
	UpdateStatus(ctx context.Context, id string, from, to Status, decidedBy string, at time.Time) (Application, error)
}
