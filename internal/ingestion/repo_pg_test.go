package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var joinedCols = []string{
	"id", "document_id", "status", "created_at", "updated_at",
	"d_id", "d_title", "d_content", "d_owner_id", "d_file_path", "d_status", "d_mime_type", "d_size_bytes", "d_created_at", "d_updated_at",
}

func TestPGRepoListFiltersByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("FROM ingestions i").
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(joinedCols).
			AddRow("job-1", "doc-1", StatusPending, now, now,
				"doc-1", "report", "body", "owner-1", "uploads/doc-1.pdf", "active", "application/pdf", int64(42), now, now))

	jobs, err := repo.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].ID != "job-1" || jobs[0].Document.OwnerID != "owner-1" {
		t.Fatalf("unexpected row: %+v", jobs[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("UPDATE ingestions").
		WithArgs("no-such-job", StatusFailed).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "status", "created_at", "updated_at"}))

	if _, err := repo.UpdateStatus(context.Background(), "no-such-job", StatusFailed); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetWithDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("JOIN documents d").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows(joinedCols).
			AddRow("job-1", "doc-1", StatusCompleted, now, now,
				"doc-1", "report", "body", "owner-1", "uploads/doc-1.pdf", "active", "application/pdf", int64(42), now, now))

	got, err := repo.GetWithDocument(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("GetWithDocument: %v", err)
	}
	if got.Status != StatusCompleted || got.Document.Title != "report" {
		t.Fatalf("unexpected row: %+v", got)
	}
}
