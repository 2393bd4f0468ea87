package flags

import (
	"context"
	"database/sql"
	"sort"
	"time"
)

// PGKV persists flags in the feature_flags table, one row per flag and scope.
type PGKV struct {
	DB    *sql.DB
	Scope string
}

func (p *PGKV) Load(ctx context.Context) (map[string]bool, error) {
	const query = `
SELECT name, enabled
FROM feature_flags
WHERE scope = $1`
	rows, err := p.DB.QueryContext(ctx, query, p.scope())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		var enabled bool
		if err := rows.Scan(&name, &enabled); err != nil {
			return nil, err
		}
		out[name] = enabled
	}
	return out, rows.Err()
}

// Save replaces the stored set for the scope in one transaction.
func (p *PGKV) Save(ctx context.Context, values map[string]bool) (err error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM feature_flags WHERE scope = $1`, p.scope()); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, name := range sortedKeys(values) {
		if _, err = tx.ExecContext(ctx, `
INSERT INTO feature_flags (scope, name, enabled, updated_at)
VALUES ($1, $2, $3, $4)`, p.scope(), name, values[name], now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (p *PGKV) Clear(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `DELETE FROM feature_flags WHERE scope = $1`, p.scope())
	return err
}

func (p *PGKV) scope() string {
	if p.Scope == "" {
		return "global"
	}
	return p.Scope
}

func sortedKeys(values map[string]bool) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ KVStore = (*PGKV)(nil)
