package ingestion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"document-backend/internal/access"
	"document-backend/internal/documents"
	"document-backend/internal/queue"
	"document-backend/internal/shared/metrics"
	"document-backend/internal/shared/telemetry"
)

// Service orchestrates the ingestion job lifecycle. It holds the persistence
// and messaging collaborators passed in at construction and consults the
// access policy for every read.
type Service struct {
	Repo  Repo
	Docs  documents.Repo
	Queue queue.Client
}

// NewService constructs a Service. Queue may be nil in environments without
// a worker; triggers then only record the job.
func NewService(repo Repo, docs documents.Repo, queueClient queue.Client) *Service {
	return &Service{Repo: repo, Docs: docs, Queue: queueClient}
}

// Trigger creates a PENDING job for the document and emits a one-way trigger
// message to the worker. Ownership failure is deliberately indistinguishable
// from a missing document. Duplicate triggers create independent jobs.
//
// The emission is fire-and-forget: a send failure is logged and the caller
// still receives the created job.
func (s *Service) Trigger(ctx context.Context, documentID, identityID string) (Job, error) {
	if documentID == "" || identityID == "" {
		return Job{}, ErrInvalidInput
	}

	doc, err := s.Docs.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if doc.OwnerID != identityID {
		return Job{}, ErrNotFound
	}

	job := Job{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	metrics.IncIngestionTriggered()

	if s.Queue != nil {
		msg := queue.Message{
			DocumentID:  documentID,
			IngestionID: job.ID,
			FilePath:    doc.FilePath,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			telemetry.Warn("ingestion.emit_failed", map[string]any{
				"ingestion_id": job.ID,
				"document_id":  documentID,
				"error":        err.Error(),
			})
		}
	}

	return job, nil
}

// GetStatus returns a job joined with its document. Non-owners receive
// ErrNotFound, the same as for a missing job.
func (s *Service) GetStatus(ctx context.Context, jobID string, caller access.Identity) (JobWithDocument, error) {
	if jobID == "" {
		return JobWithDocument{}, ErrInvalidInput
	}
	job, err := s.Repo.GetWithDocument(ctx, jobID)
	if err != nil {
		return JobWithDocument{}, err
	}
	if !access.CanAccess(caller, job.Document.OwnerID) {
		return JobWithDocument{}, ErrNotFound
	}
	return job, nil
}

// ListAll returns every job for admins and only owned jobs for everyone
// else, newest first.
func (s *Service) ListAll(ctx context.Context, caller access.Identity) ([]JobWithDocument, error) {
	ownerFilter := caller.ID
	if caller.Role == access.RoleAdmin {
		ownerFilter = ""
	}
	return s.Repo.List(ctx, ownerFilter)
}

// UpdateStatus applies a worker callback. The new status overwrites the old
// one unconditionally: callbacks may arrive out of order or duplicated, and
// a stale callback can overwrite a newer status. Closing that gap would need
// a monotonic sequence or version column on the job row.
func (s *Service) UpdateStatus(ctx context.Context, jobID, status string) (Job, error) {
	if jobID == "" || !ValidStatus(status) {
		return Job{}, ErrInvalidInput
	}

	job, err := s.Repo.UpdateStatus(ctx, jobID, status)
	if err != nil {
		return Job{}, err
	}

	switch status {
	case StatusCompleted:
		metrics.IncIngestionCompleted()
		metrics.ObserveIngestionDurationMs(float64(job.UpdatedAt.Sub(job.CreatedAt).Milliseconds()))
	case StatusFailed:
		metrics.IncIngestionFailed()
		metrics.ObserveIngestionDurationMs(float64(job.UpdatedAt.Sub(job.CreatedAt).Milliseconds()))
	}

	return job, nil
}
