package contracts

import "context"

// Repo defines persistence operations for contracts.
type Repo interface {
	Create(ctx context.Context, c Contract) error
	GetByID(ctx context.Context, id string) (Contract, error)
	GetByApplication(ctx context.Context, applicationID string) (Contract, error)
	// UpdateStatus writes c's status and timestamps if the stored status is
	// still from.
	UpdateStatus(ctx context.Context, c Contract, from Status) (Contract, error)
}
