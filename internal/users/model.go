package users

import (
	"time"

	"document-backend/internal/access"
)

// User is an identity that can authenticate and own documents.
// PasswordHash never leaves this package in API responses.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Role         access.Role `json:"role"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// PublicUser is the outward-facing representation of a user.
type PublicUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  access.Role `json:"role"`
}

// Public strips the credential hash and timestamps for API responses.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Identity returns the policy-engine view of the user.
func (u User) Identity() access.Identity {
	return access.Identity{ID: u.ID, Role: u.Role}
}
