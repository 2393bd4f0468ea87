package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. The snapshot is stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `id, property_id, applicant_id, guarantor_id, status, message, snapshot, created_at, decided_at, decided_by`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	snapshot, err := json.Marshal(app.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	const query = `
INSERT INTO applications (
    id,
    property_id,
    applicant_id,
    guarantor_id,
    status,
    message,
    snapshot,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.DB.ExecContext(ctx, query,
		app.ID,
		app.PropertyID,
		app.ApplicantID,
		nullString(app.GuarantorID),
		string(app.Status),
		app.Message,
		snapshot,
		app.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM applications
WHERE id = $1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

func (r *PGRepo) ListByProperty(ctx context.Context, propertyID string) ([]Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM applications
WHERE property_id = $1
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// UpdateStatus records a decision with compare-and-swap on the current status.
// The snapshot column is never written here.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status, decidedBy string, at time.Time) (Application, error) {
	query := `
UPDATE applications
SET status = $1, decided_at = $2, decided_by = $3
WHERE id = $4 AND status = $5
RETURNING ` + applicationColumns

	app, err := scanApplication(r.DB.QueryRowContext(ctx, query,
		string(to), at, nullString(decidedBy), id, string(from)))
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Application{}, err
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return Application{}, getErr
	}
	return Application{}, ErrStatusConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var status string
	var guarantorID, decidedBy sql.NullString
	var decidedAt sql.NullTime
	var snapshot []byte
	if err := row.Scan(
		&app.ID,
		&app.PropertyID,
		&app.ApplicantID,
		&guarantorID,
		&status,
		&app.Message,
		&snapshot,
		&app.CreatedAt,
		&decidedAt,
		&decidedBy,
	); err != nil {
		return Application{}, err
	}
	app.Status = Status(status)
	app.GuarantorID = guarantorID.String
	app.DecidedBy = decidedBy.String
	if decidedAt.Valid {
		at := decidedAt.Time
		app.DecidedAt = &at
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &app.Snapshot); err != nil {
			return Application{}, fmt.Errorf("decode snapshot: %w", err)
		}
	}
	return app, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
