package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"document-backend/internal/access"
	"document-backend/internal/shared/util"
)

// Service contains identity registration and credential checks.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a new identity with an irreversibly hashed password.
// The role defaults to Viewer when empty.
func (s *Service) Register(ctx context.Context, email, password string, role access.Role) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidInput
	}
	if role == "" {
		role = access.RoleViewer
	}
	if !role.Valid() {
		return User{}, ErrInvalidInput
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate looks up the identity by email and verifies the password.
// A nil result with nil error is the only negative signal: unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !util.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return &user, nil
}

// GetByEmail returns the user registered under the email.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByEmail(ctx, email)
}

// GetByID returns a single user.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// UpdateParams are the mutable identity fields; nil means leave unchanged.
type UpdateParams struct {
	Email    *string
	Role     *access.Role
	Password *string
}

// Update applies the given fields to an existing user. A new password is
// re-hashed before storage.
func (s *Service) Update(ctx context.Context, userID string, params UpdateParams) (User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if params.Email != nil {
		email := strings.TrimSpace(*params.Email)
		if email == "" {
			return User{}, ErrInvalidInput
		}
		user.Email = email
	}
	if params.Role != nil {
		if !params.Role.Valid() {
			return User{}, ErrInvalidInput
		}
		user.Role = *params.Role
	}
	if params.Password != nil {
		if *params.Password == "" {
			return User{}, ErrInvalidInput
		}
		hash, err := util.HashPassword(*params.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Delete removes a user and returns the deleted record.
func (s *Service) Delete(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID)
}
