package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"leasing-backend/internal/flags"
	"leasing-backend/internal/shared/transition"
)

type gate map[flags.Flag]bool

func (g gate) IsEnabled(f flags.Flag) bool { return g[f] }

func newTestService(g flags.Gate) (*Service, *time.Time) {
	now := time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Flags: g,
		Now:   func() time.Time { return now },
	}
	return svc, &now
}

func applicantOwner() OwnerScope {
	return OwnerScope{Type: OwnerApplicant, ID: "applicant-1"}
}

func TestServiceCreatePendingDocument(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	doc, result, err := svc.Create(ctx, CreateInput{
		Owner: applicantOwner(),
		Type:  TypeApplicantID,
		File:  CandidateFile{Name: "carnet.pdf", SizeBytes: mb, MimeType: "Application/PDF"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.ID == "" || doc.Status != StatusPending {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.MimeType != mimePDF {
		t.Fatalf("expected normalized mime type, got %q", doc.MimeType)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected expiry warning, got %v", result.Warnings)
	}

	stored, err := svc.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Name != "carnet.pdf" {
		t.Fatalf("unexpected stored document %+v", stored)
	}
}

func TestServiceCreateRejectsPolicyViolation(t *testing.T) {
	svc, _ := newTestService(nil)

	_, result, err := svc.Create(context.Background(), CreateInput{
		Owner: applicantOwner(),
		Type:  TypeApplicantID,
		File:  CandidateFile{Name: "carnet.pdf", SizeBytes: 6 * mb, MimeType: mimePDF},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Errors) != 1 {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if result.IsValid {
		t.Fatalf("expected invalid result")
	}

	docs, _ := svc.List(context.Background(), applicantOwner())
	if len(docs) != 0 {
		t.Fatalf("rejected file must not be recorded")
	}
}

func TestServiceCreateInputErrors(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateInput{Owner: OwnerScope{Type: "tenant", ID: "x"}, Type: TypeApplicantID, File: CandidateFile{Name: "a.pdf"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad owner, got %v", err)
	}

	_, _, err = svc.Create(ctx, CreateInput{Owner: applicantOwner(), Type: Type("nope"), File: CandidateFile{Name: "a.pdf"}})
	if !errors.Is(err, ErrUnknownDocumentType) {
		t.Fatalf("expected ErrUnknownDocumentType, got %v", err)
	}
}

func TestServiceCreateDisabled(t *testing.T) {
	svc, _ := newTestService(gate{flags.DocumentReview: true})

	_, _, err := svc.Create(context.Background(), CreateInput{
		Owner: applicantOwner(),
		Type:  TypeApplicantID,
		File:  CandidateFile{Name: "carnet.pdf", SizeBytes: mb, MimeType: mimePDF},
	})
	if !errors.Is(err, ErrFeatureDisabled) {
		t.Fatalf("expected ErrFeatureDisabled, got %v", err)
	}
}

func TestServiceReview(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	doc, _, err := svc.Create(ctx, CreateInput{
		Owner: applicantOwner(),
		Type:  TypeApplicantIncomeProof,
		File:  CandidateFile{Name: "liquidacion.pdf", SizeBytes: mb, MimeType: mimePDF},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	verified, err := svc.Review(ctx, doc.ID, ReviewInput{Decision: StatusVerified, ReviewedBy: "owner-1"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if verified.Status != StatusVerified || verified.VerifiedAt == nil || verified.VerifiedBy != "owner-1" {
		t.Fatalf("unexpected reviewed document %+v", verified)
	}

	_, err = svc.Review(ctx, doc.ID, ReviewInput{Decision: StatusRejected, ReviewedBy: "owner-1", Reason: "ilegible"})
	if !errors.Is(err, transition.ErrInvalid) {
		t.Fatalf("verified document must be terminal, got %v", err)
	}
}

func TestServiceReviewRejectionNeedsReason(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	doc, _, err := svc.Create(ctx, CreateInput{
		Owner: applicantOwner(),
		Type:  TypeApplicantID,
		File:  CandidateFile{Name: "carnet.png", SizeBytes: mb, MimeType: mimePNG},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Review(ctx, doc.ID, ReviewInput{Decision: StatusRejected}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	rejected, err := svc.Review(ctx, doc.ID, ReviewInput{Decision: StatusRejected, Reason: "foto borrosa"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if rejected.RejectionReason != "foto borrosa" {
		t.Fatalf("unexpected rejection reason %q", rejected.RejectionReason)
	}
}

func TestServiceReviewDisabled(t *testing.T) {
	svc, _ := newTestService(gate{flags.DocumentUpload: true})
	if _, err := svc.Review(context.Background(), "doc-1", ReviewInput{Decision: StatusVerified}); !errors.Is(err, ErrFeatureDisabled) {
		t.Fatalf("expected ErrFeatureDisabled, got %v", err)
	}
}

func TestMemoryRepoUpdateStatusCompareAndSwap(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	if err := repo.Create(ctx, Document{ID: "doc-1", Status: StatusPending}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.UpdateStatus(ctx, "doc-1", StatusPending, StatusUpdate{Status: StatusVerified}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, "doc-1", StatusPending, StatusUpdate{Status: StatusRejected}); !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, "missing", StatusPending, StatusUpdate{Status: StatusRejected}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceSummary(t *testing.T) {
	svc, now := newTestService(nil)
	ctx := context.Background()

	for _, in := range []CreateInput{
		{Owner: applicantOwner(), Type: TypeApplicantID, File: CandidateFile{Name: "id.pdf", SizeBytes: mb, MimeType: mimePDF}},
		{Owner: applicantOwner(), Type: TypeApplicantIncomeProof, File: CandidateFile{Name: "inc.pdf", SizeBytes: mb, MimeType: mimePDF}},
		{Owner: applicantOwner(), Type: TypeBankStatement, File: CandidateFile{Name: "bank.pdf", SizeBytes: mb, MimeType: mimePDF}},
		{Owner: applicantOwner(), Type: TypeTaxReturn, File: CandidateFile{Name: "tax.pdf", SizeBytes: mb, MimeType: mimePDF}},
	} {
		doc, _, err := svc.Create(ctx, in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if in.Type == TypeApplicantID {
			if _, err := svc.Review(ctx, doc.ID, ReviewInput{Decision: StatusVerified, ReviewedBy: "owner-1"}); err != nil {
				t.Fatalf("Review: %v", err)
			}
		}
	}

	sum, err := svc.Summary(ctx, applicantOwner())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Summary.Total != 4 || sum.Summary.CompletionRate != 50 {
		t.Fatalf("unexpected summary %+v", sum.Summary)
	}
	if len(sum.MissingRequired) != 2 {
		t.Fatalf("expected income proof and credit report missing, got %v", sum.MissingRequired)
	}

	*now = now.AddDate(2, 0, 0)
	sum, _ = svc.Summary(ctx, applicantOwner())
	if sum.Summary.Expired != 4 {
		t.Fatalf("expected every expiring document to be expired, got %d", sum.Summary.Expired)
	}
}
