package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.ID] = cloneApplication(app)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return cloneApplication(app), nil
}

// ListByProperty returns the property's applications, oldest first.
func (r *MemoryRepo) ListByProperty(ctx context.Context, propertyID string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Application, 0)
	for _, app := range r.data {
		if app.PropertyID == propertyID {
			out = append(out, cloneApplication(app))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, from, to Status, decidedBy string, at time.Time) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	if app.Status != from {
		return Application{}, ErrStatusConflict
	}
	app.Status = to
	app.DecidedAt = &at
	app.DecidedBy = decidedBy
	r.data[id] = app
	return cloneApplication(app), nil
}

// cloneApplication keeps callers from mutating the stored snapshot.
func cloneApplication(app Application) Application {
	if app.Snapshot.Guarantor != nil {
		g := *app.Snapshot.Guarantor
		app.Snapshot.Guarantor = &g
	}
	if app.DecidedAt != nil {
		at := *app.DecidedAt
		app.DecidedAt = &at
	}
	return app
}

var _ Repo = (*MemoryRepo)(nil)
