package users

import "context"

// Repo defines persistence operations for users. Delete on a missing id
// returns ErrNotFound, distinct from other failures.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, userID string) (User, error)
}
