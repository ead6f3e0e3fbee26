package scanstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// newMockDB creates a sqlmock database with automatic cleanup and
// expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

var recordColumns = []string{"last_scan", "actor", "count"}

func TestPostgresStore_Get(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT last_scan, actor, count FROM scan_records WHERE name = \\$1").
		WithArgs("coffee_machine").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(at, "Robin", int64(3)))

	rec, err := s.Get(context.Background(), "coffee_machine")
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Scanned() || !rec.LastScan.Equal(at) {
		t.Errorf("last scan = %v, want %v", rec.LastScan, at)
	}
	if rec.Actor != "Robin" {
		t.Errorf("actor = %q, want Robin", rec.Actor)
	}
	if rec.Count != 3 {
		t.Errorf("count = %d, want 3", rec.Count)
	}
}

func TestPostgresStore_GetMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectQuery("SELECT last_scan, actor, count FROM scan_records WHERE name = \\$1").
		WithArgs("plants").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	rec, err := s.Get(context.Background(), "plants")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Scanned() || rec.Count != 0 || rec.Actor != "" {
		t.Errorf("expected zero record, got %+v", rec)
	}
}

func TestPostgresStore_GetNullColumns(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectQuery("SELECT last_scan, actor, count FROM scan_records WHERE name = \\$1").
		WithArgs("plants").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(nil, nil, int64(0)))

	rec, err := s.Get(context.Background(), "plants")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Scanned() || rec.Actor != "" {
		t.Errorf("expected absent timestamp and actor, got %+v", rec)
	}
}

func TestPostgresStore_SetUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO scan_records .+ ON CONFLICT \\(name\\)").
		WithArgs("coffee_machine", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Set(context.Background(), "coffee_machine", at); err != nil {
		t.Fatal(err)
	}
}

func TestPostgresStore_SetActor(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectExec("UPDATE scan_records SET actor = \\$2 WHERE name = \\$1").
		WithArgs("coffee_machine", "Robin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.SetActor(context.Background(), "coffee_machine", "Robin"); err != nil {
		t.Fatal(err)
	}

	// Empty actor is a no-op, no query expected.
	if err := s.SetActor(context.Background(), "coffee_machine", ""); err != nil {
		t.Fatal(err)
	}
}

func TestPostgresStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectExec("DELETE FROM scan_records WHERE name = \\$1").
		WithArgs("plants").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Delete(context.Background(), "plants"); err != nil {
		t.Fatal(err)
	}
}
