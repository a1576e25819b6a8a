package ingestion

import (
	"time"

	"document-backend/internal/documents"
)

// Job statuses. PENDING -> PROCESSING -> COMPLETED | FAILED is the expected
// path, but terminal states are a convention only; the callback path never
// enforces transitions.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Job tracks one asynchronous ingestion of a document's file. Jobs are
// created only by the trigger path and never deleted.
type Job struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// JobWithDocument is a job joined with the document it ingests.
type JobWithDocument struct {
	Job
	Document documents.Document `json:"document"`
}

// ValidStatus reports whether s is a known job status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
