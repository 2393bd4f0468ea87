package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var documentColumnNames = []string{
	"id", "owner_type", "owner_id", "name", "doc_type", "status", "uploaded_at",
	"file_size_bytes", "mime_type", "verified_at", "verified_by", "rejection_reason",
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:            "doc-1",
		OwnerType:     OwnerApplicant,
		OwnerID:       "applicant-1",
		Name:          "carnet.pdf",
		Type:          TypeApplicantID,
		Status:        StatusPending,
		UploadedAt:    time.Now().UTC(),
		FileSizeBytes: 1024,
		MimeType:      mimePDF,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.ID, "applicant", doc.OwnerID, doc.Name, "applicant_id", "pending", sqlmock.AnyArg(), doc.FileSizeBytes, doc.MimeType).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM documents").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows(documentColumnNames).
		AddRow("doc-2", "applicant", "applicant-1", "liquidacion.pdf", "applicant_income_proof", "verified", now, int64(2048), mimePDF, now, "owner-1", nil).
		AddRow("doc-1", "applicant", "applicant-1", "carnet.pdf", "applicant_id", "pending", now.Add(-time.Hour), int64(1024), mimePDF, nil, nil, nil)
	mock.ExpectQuery("FROM documents").
		WithArgs("applicant", "applicant-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	docs, err := repo.ListByOwner(context.Background(), OwnerScope{Type: OwnerApplicant, ID: "applicant-1"})
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].VerifiedAt == nil || docs[0].VerifiedBy != "owner-1" {
		t.Fatalf("expected verification fields on first document, got %+v", docs[0])
	}
	if docs[1].VerifiedAt != nil || docs[1].Status != StatusPending {
		t.Fatalf("unexpected second document %+v", docs[1])
	}
}

func TestPGRepoUpdateStatusConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("UPDATE documents").
		WithArgs("rejected", nil, "owner-1", "ilegible", "doc-1", "pending").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM documents").
		WithArgs("doc-1").
		WillReturnRows(sqlmock.NewRows(documentColumnNames).
			AddRow("doc-1", "applicant", "applicant-1", "carnet.pdf", "applicant_id", "verified", now, int64(1024), mimePDF, now, "admin-1", nil))

	repo := &PGRepo{DB: db}
	_, err = repo.UpdateStatus(context.Background(), "doc-1", StatusPending, StatusUpdate{
		Status:          StatusRejected,
		ReviewedBy:      "owner-1",
		ReviewedAt:      now,
		RejectionReason: "ilegible",
	})
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("UPDATE documents").
		WithArgs("verified", sqlmock.AnyArg(), "owner-1", nil, "doc-1", "pending").
		WillReturnRows(sqlmock.NewRows(documentColumnNames).
			AddRow("doc-1", "applicant", "applicant-1", "carnet.pdf", "applicant_id", "verified", now, int64(1024), mimePDF, now, "owner-1", nil))

	repo := &PGRepo{DB: db}
	doc, err := repo.UpdateStatus(context.Background(), "doc-1", StatusPending, StatusUpdate{
		Status:     StatusVerified,
		ReviewedBy: "owner-1",
		ReviewedAt: now,
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if doc.Status != StatusVerified || doc.VerifiedAt == nil {
		t.Fatalf("unexpected document %+v", doc)
	}
}
