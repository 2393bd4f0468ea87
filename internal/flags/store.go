package flags

import (
	"context"
	"fmt"
	"sync"

	"leasing-backend/internal/shared/telemetry"
)

// KVStore persists the full flag set.
type KVStore interface {
	Load(ctx context.Context) (map[string]bool, error)
	Save(ctx context.Context, values map[string]bool) error
	Clear(ctx context.Context) error
}

// Options are the inputs of Load, in increasing precedence.
type Options struct {
	// Defaults replaces the compiled-in defaults when non-nil.
	Defaults map[Flag]bool
	// Env holds environment overrides keyed by flag name.
	Env map[string]bool
	// Persist is the key-value store holding user overrides. Nil keeps
	// flags in memory only.
	Persist KVStore
}

// Store is the process-wide feature flag state. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	base     map[Flag]bool // defaults + environment
	values   map[Flag]bool
	defaults map[Flag]bool
	persist  KVStore
}

// Load builds an initialized Store. It fails only when persisted overrides
// cannot be read.
func Load(ctx context.Context, opts Options) (*Store, error) {
	defs := opts.Defaults
	if defs == nil {
		defs = Defaults()
	}

	base := make(map[Flag]bool, len(defs))
	for f, v := range defs {
		base[f] = v
	}
	mergeInto(base, opts.Env, "env")

	s := &Store{
		base:     base,
		values:   copyFlags(base),
		defaults: copyFlags(defs),
		persist:  opts.Persist,
	}

	if s.persist != nil {
		persisted, err := s.persist.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load persisted flags: %w", err)
		}
		mergeInto(s.values, persisted, "persisted")
	}

	telemetry.Info("flags.loaded", map[string]any{"flags": s.snapshotStrings()})
	return s, nil
}

// IsEnabled reports the current value of f. Unknown flags are disabled.
func (s *Store) IsEnabled(f Flag) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[f]
}

// Enable turns f on and persists the full set.
func (s *Store) Enable(ctx context.Context, f Flag) error {
	return s.set(ctx, f, func(bool) bool { return true })
}

// Disable turns f off and persists the full set.
func (s *Store) Disable(ctx context.Context, f Flag) error {
	return s.set(ctx, f, func(bool) bool { return false })
}

// Toggle flips f and returns its new value. On error it returns the value
// still in effect.
func (s *Store) Toggle(ctx context.Context, f Flag) (bool, error) {
	var prev bool
	err := s.set(ctx, f, func(cur bool) bool {
		prev = cur
		return !cur
	})
	if err != nil {
		return prev, err
	}
	return !prev, nil
}

// ResetToDefaults clears persisted overrides and reapplies defaults and
// environment overrides.
func (s *Store) ResetToDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persist != nil {
		if err := s.persist.Clear(ctx); err != nil {
			return fmt.Errorf("clear persisted flags: %w", err)
		}
	}
	s.values = copyFlags(s.base)
	telemetry.Info("flags.reset", map[string]any{"flags": s.snapshotStringsLocked()})
	return nil
}

// Snapshot returns a copy of every flag value.
func (s *Store) Snapshot() map[Flag]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFlags(s.values)
}

// Default returns the value f would have after ResetToDefaults.
func (s *Store) Default(f Flag) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base[f]
}

func (s *Store) set(ctx context.Context, f Flag, next func(bool) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.defaults[f]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFlag, string(f))
	}

	prev := s.values[f]
	s.values[f] = next(prev)
	if s.persist != nil {
		if err := s.persist.Save(ctx, s.snapshotStringsLocked()); err != nil {
			s.values[f] = prev
			return fmt.Errorf("persist flags: %w", err)
		}
	}
	telemetry.Info("flags.changed", map[string]any{"flag": string(f), "enabled": s.values[f]})
	return nil
}

func (s *Store) snapshotStrings() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotStringsLocked()
}

func (s *Store) snapshotStringsLocked() map[string]bool {
	out := make(map[string]bool, len(s.values))
	for f, v := range s.values {
		out[string(f)] = v
	}
	return out
}

// mergeInto copies known flags from overrides into dst; unknown names are logged and skipped.
func mergeInto(dst map[Flag]bool, overrides map[string]bool, source string) {
	for name, v := range overrides {
		f := Flag(name)
		if _, ok := dst[f]; !ok {
			telemetry.Warn("flags.unknown_override", map[string]any{"flag": name, "source": source})
			continue
		}
		dst[f] = v
	}
}

func copyFlags(in map[Flag]bool) map[Flag]bool {
	out := make(map[Flag]bool, len(in))
	for f, v := range in {
		out[f] = v
	}
	return out
}
