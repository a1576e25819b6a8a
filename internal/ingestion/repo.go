package ingestion

import "context"

// Repo defines persistence operations for ingestion jobs. List with an empty
// ownerID returns every job; otherwise only jobs whose document belongs to
// ownerID. Results are ordered by creation time descending.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	GetWithDocument(ctx context.Context, jobID string) (JobWithDocument, error)
	List(ctx context.Context, ownerID string) ([]JobWithDocument, error)
	UpdateStatus(ctx context.Context, jobID, status string) (Job, error)
}
