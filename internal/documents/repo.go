package documents

import "context"

// Repo defines persistence operations for documents. Delete on a missing id
// returns ErrNotFound, distinct from other failures.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, docID string) (Document, error)
	ListAll(ctx context.Context) ([]Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Document, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, docID string) (Document, error)
}
