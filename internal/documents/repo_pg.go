package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, owner_type, owner_id, name, doc_type, status, uploaded_at, file_size_bytes, mime_type, verified_at, verified_by, rejection_reason`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    owner_type,
    owner_id,
    name,
    doc_type,
    status,
    uploaded_at,
    file_size_bytes,
    mime_type
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		string(doc.OwnerType),
		doc.OwnerID,
		doc.Name,
		string(doc.Type),
		string(doc.Status),
		doc.UploadedAt,
		doc.FileSizeBytes,
		doc.MimeType,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByOwner lists an owner's documents ordered newest-first.
func (r *PGRepo) ListByOwner(ctx context.Context, scope OwnerScope) ([]Document, error) {
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_type = $1 AND owner_id = $2
ORDER BY uploaded_at DESC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, string(scope.Type), scope.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateStatus writes a review decision with compare-and-swap on the current status.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from Status, update StatusUpdate) (Document, error) {
	var verifiedAt sql.NullTime
	if update.Status == StatusVerified {
		verifiedAt = sql.NullTime{Time: update.ReviewedAt, Valid: true}
	}
	var verifiedBy sql.NullString
	if update.ReviewedBy != "" {
		verifiedBy = sql.NullString{String: update.ReviewedBy, Valid: true}
	}
	var reason sql.NullString
	if update.Status == StatusRejected && update.RejectionReason != "" {
		reason = sql.NullString{String: update.RejectionReason, Valid: true}
	}

	query := `
UPDATE documents
SET status = $1, verified_at = $2, verified_by = $3, rejection_reason = $4
WHERE id = $5 AND status = $6
RETURNING ` + documentColumns

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query,
		string(update.Status),
		verifiedAt,
		verifiedBy,
		reason,
		id,
		string(from),
	))
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Document{}, err
	}
	// No row matched: either the document is gone or its status moved on.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return Document{}, getErr
	}
	return Document{}, ErrStatusConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var ownerType, docType, status string
	var verifiedAt sql.NullTime
	var verifiedBy sql.NullString
	var reason sql.NullString
	if err := row.Scan(
		&doc.ID,
		&ownerType,
		&doc.OwnerID,
		&doc.Name,
		&docType,
		&status,
		&doc.UploadedAt,
		&doc.FileSizeBytes,
		&doc.MimeType,
		&verifiedAt,
		&verifiedBy,
		&reason,
	); err != nil {
		return Document{}, err
	}
	doc.OwnerType = OwnerType(ownerType)
	doc.Type = Type(docType)
	doc.Status = Status(status)
	if verifiedAt.Valid {
		t := verifiedAt.Time
		doc.VerifiedAt = &t
	}
	if verifiedBy.Valid {
		doc.VerifiedBy = verifiedBy.String
	}
	if reason.Valid {
		doc.RejectionReason = reason.String
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
