package flags

import (
	"context"
	"sync"
)

// MemoryKV keeps persisted flags in process memory.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]bool
}

// NewMemoryKV constructs an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{}
}

func (m *MemoryKV) Load(ctx context.Context) (map[string]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryKV) Save(ctx context.Context, values map[string]bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]bool, len(values))
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryKV) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = nil
	return nil
}

var _ KVStore = (*MemoryKV)(nil)
