package contracts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const contractColumns = `id, application_id, property_id, status, created_at, approved_at, sent_to_signature_at, fully_signed_at, cancelled_at`

const uniqueViolation = "23505"

func (r *PGRepo) Create(ctx context.Context, c Contract) error {
	const query = `
INSERT INTO contracts (
    id,
    application_id,
    property_id,
    status,
    created_at
) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctx, query, c.ID, c.ApplicationID, c.PropertyID, string(c.Status), c.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrAlreadyExists
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Contract, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *PGRepo) GetByApplication(ctx context.Context, applicationID string) (Contract, error) {
	return r.getOne(ctx, `WHERE application_id = $1`, applicationID)
}

func (r *PGRepo) getOne(ctx context.Context, where string, arg string) (Contract, error) {
	query := `
SELECT ` + contractColumns + `
FROM contracts
` + where
	c, err := scanContract(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	return c, err
}

// UpdateStatus writes the new status with compare-and-swap on from. Timestamps
// already set in the row are kept.
func (r *PGRepo) UpdateStatus(ctx context.Context, c Contract, from Status) (Contract, error) {
	query := `
UPDATE contracts
SET status = $1,
    approved_at = COALESCE(approved_at, $2),
    sent_to_signature_at = COALESCE(sent_to_signature_at, $3),
    fully_signed_at = COALESCE(fully_signed_at, $4),
    cancelled_at = COALESCE(cancelled_at, $5)
WHERE id = $6 AND status = $7
RETURNING ` + contractColumns

	updated, err := scanContract(r.DB.QueryRowContext(ctx, query,
		string(c.Status),
		nullTime(c.ApprovedAt),
		nullTime(c.SentToSignatureAt),
		nullTime(c.FullySignedAt),
		nullTime(c.CancelledAt),
		c.ID,
		string(from),
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Contract{}, err
	}
	if _, getErr := r.GetByID(ctx, c.ID); getErr != nil {
		return Contract{}, getErr
	}
	return Contract{}, ErrStatusConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (Contract, error) {
	var c Contract
	var status string
	var approvedAt, sentAt, signedAt, cancelledAt sql.NullTime
	if err := row.Scan(
		&c.ID,
		&c.ApplicationID,
		&c.PropertyID,
		&status,
		&c.CreatedAt,
		&approvedAt,
		&sentAt,
		&signedAt,
		&cancelledAt,
	); err != nil {
		return Contract{}, err
	}
	c.Status = Status(status)
	c.ApprovedAt = timePtr(approvedAt)
	c.SentToSignatureAt = timePtr(sentAt)
	c.FullySignedAt = timePtr(signedAt)
	c.CancelledAt = timePtr(cancelledAt)
	return c, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

var _ Repo = (*PGRepo)(nil)
