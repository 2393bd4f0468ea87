package documents

import (
	"testing"
	"time"
)

func TestSummarizeCompletionRate(t *testing.T) {
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	docs := []Document{
		{ID: "1", Type: TypeApplicantID, Status: StatusVerified, UploadedAt: now},
		{ID: "2", Type: TypeApplicantIncomeProof, Status: StatusPending, UploadedAt: now},
		{ID: "3", Type: TypeBankStatement, Status: StatusVerified, UploadedAt: now},
		{ID: "4", Type: TypePropertyPhoto, Status: StatusRejected, UploadedAt: now},
	}

	s := Summarize(docs, now)
	if s.Total != 4 || s.Required != 2 || s.RequiredVerified != 1 {
		t.Fatalf("unexpected counters %+v", s)
	}
	if s.CompletionRate != 50 {
		t.Fatalf("expected completion rate 50, got %v", s.CompletionRate)
	}
	if s.Verified != 2 || s.Pending != 1 || s.Rejected != 1 {
		t.Fatalf("unexpected status counters %+v", s)
	}
}

func TestSummarizeNoRequiredDocuments(t *testing.T) {
	now := time.Now().UTC()
	if rate := Summarize(nil, now).CompletionRate; rate != 100 {
		t.Fatalf("expected 100 for empty set, got %v", rate)
	}
	docs := []Document{{ID: "1", Type: TypePropertyPhoto, Status: StatusPending, UploadedAt: now}}
	if rate := Summarize(docs, now).CompletionRate; rate != 100 {
		t.Fatalf("expected 100 without required documents, got %v", rate)
	}
}

func TestSummarizeCountsExpiredAndUnknown(t *testing.T) {
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	docs := []Document{
		{ID: "1", Type: TypeApplicantCreditReport, Status: StatusVerified, UploadedAt: now.AddDate(0, 0, -45)},
		{ID: "2", Type: TypeApplicantCreditReport, Status: StatusRejected, UploadedAt: now.AddDate(0, 0, -45)},
		{ID: "3", Type: Type("legacy_scan"), Status: StatusVerified, UploadedAt: now.AddDate(-5, 0, 0)},
	}

	s := Summarize(docs, now)
	if s.Expired != 2 {
		t.Fatalf("expected 2 expired regardless of status, got %d", s.Expired)
	}
	if s.Total != 3 || s.Verified != 2 {
		t.Fatalf("unknown type must count toward totals, got %+v", s)
	}
	if s.Required != 2 {
		t.Fatalf("unknown type must not count as required, got %d", s.Required)
	}
	if s.CompletionRate < 0 || s.CompletionRate > 100 {
		t.Fatalf("completion rate out of range: %v", s.CompletionRate)
	}
}

func TestMissingRequired(t *testing.T) {
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	docs := []Document{
		{ID: "1", Type: TypeApplicantID, Status: StatusVerified, UploadedAt: now.AddDate(0, -1, 0)},
		{ID: "2", Type: TypeApplicantIncomeProof, Status: StatusPending, UploadedAt: now},
		{ID: "3", Type: TypeApplicantCreditReport, Status: StatusVerified, UploadedAt: now.AddDate(0, 0, -60)},
	}

	missing := MissingRequired(docs, CategoryApplicant, now)
	want := []Type{TypeApplicantIncomeProof, TypeApplicantCreditReport}
	if len(missing) != len(want) {
		t.Fatalf("expected %v, got %v", want, missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, missing)
		}
	}

	if got := MissingRequired(docs, CategoryGuarantor, now); len(got) != 0 {
		t.Fatalf("guarantor category has no required types, got %v", got)
	}
}
