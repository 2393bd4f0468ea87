package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStatusWithoutDatabase(t *testing.T) {
	got := NewService(nil).Status(context.Background())
	if !got.OK || got.Database != DatabaseMemory {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	svc := NewService(db)

	mock.ExpectPing()
	if got := svc.Status(context.Background()); !got.OK || got.Database != DatabaseUp {
		t.Fatalf("expected up, got %+v", got)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	if got := svc.Status(context.Background()); got.OK || got.Database != DatabaseDown {
		t.Fatalf("expected down, got %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
