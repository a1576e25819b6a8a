package users

import (
	"context"
	"errors"
	"testing"

	"document-backend/internal/access"
)

func TestRegisterAndAuthenticateRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, "a@x.com", "pw123456", access.RoleEditor)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.Role != access.RoleEditor {
		t.Fatalf("expected Editor role, got %s", created.Role)
	}
	if created.PasswordHash == "pw123456" {
		t.Fatal("password must be stored hashed")
	}

	user, err := svc.Authenticate(ctx, "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user == nil {
		t.Fatal("expected a match for correct credentials")
	}
	if user.Role != access.RoleEditor {
		t.Fatalf("expected Editor role, got %s", user.Role)
	}
	if user.Public().ID != created.ID {
		t.Fatalf("identity mismatch: %s != %s", user.ID, created.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "pw123456", access.RoleEditor); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "a@x.com", "other-pw", access.RoleViewer); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterDefaultsToViewer(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	created, err := svc.Register(context.Background(), "v@x.com", "pw123456", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.Role != access.RoleViewer {
		t.Fatalf("expected Viewer default, got %s", created.Role)
	}
}

func TestAuthenticateNegativePaths(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "pw123456", access.RoleViewer); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "a@x.com", "wrong-password")
	if err != nil {
		t.Fatalf("Authenticate with wrong password must not error: %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for wrong password")
	}

	user, err = svc.Authenticate(ctx, "unknown@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Authenticate with unknown email must not error: %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for unknown email")
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, "a@x.com", "pw123456", access.RoleEditor)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	newPassword := "new-password"
	updated, err := svc.Update(ctx, created.ID, UpdateParams{Password: &newPassword})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PasswordHash == newPassword || updated.PasswordHash == created.PasswordHash {
		t.Fatal("expected password to be re-hashed")
	}

	user, err := svc.Authenticate(ctx, "a@x.com", "new-password")
	if err != nil || user == nil {
		t.Fatalf("expected new password to authenticate, got user=%v err=%v", user, err)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
