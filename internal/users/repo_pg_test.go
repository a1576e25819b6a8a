package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"document-backend/internal/access"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := User{
		ID:           "user-1",
		Email:        "a@x.com",
		Role:         access.RoleEditor,
		PasswordHash: "$2a$10$hash",
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, string(user.Role), user.PasswordHash).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, email, role, password_hash").
		WithArgs("missing@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "password_hash", "created_at", "updated_at"}))

	if _, err := repo.GetByEmail(context.Background(), "missing@x.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE users").
		WithArgs("user-1", "a@x.com", "Viewer", "hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), User{ID: "user-1", Email: "a@x.com", Role: access.RoleViewer, PasswordHash: "hash"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteReturnsRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("DELETE FROM users").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "password_hash", "created_at", "updated_at"}).
			AddRow("user-1", "a@x.com", "Editor", "hash", now, now))

	user, err := repo.Delete(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if user.Email != "a@x.com" || user.Role != access.RoleEditor {
		t.Fatalf("unexpected deleted record: %+v", user)
	}
}
