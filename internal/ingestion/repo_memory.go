package ingestion

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"document-backend/internal/documents"
)

// MemoryRepo stores jobs in memory and resolves the document join through
// the documents repository. Safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Job
	docs documents.Repo
}

// NewMemoryRepo constructs a MemoryRepo backed by the given documents repo.
func NewMemoryRepo(docs documents.Repo) *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Job),
		docs: docs,
	}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	r.byID[job.ID] = job
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) GetWithDocument(ctx context.Context, jobID string) (JobWithDocument, error) {
	job, err := r.GetByID(ctx, jobID)
	if err != nil {
		return JobWithDocument{}, err
	}
	doc, err := r.docs.GetByID(ctx, job.DocumentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return JobWithDocument{Job: job}, nil
		}
		return JobWithDocument{}, err
	}
	return JobWithDocument{Job: job, Document: doc}, nil
}

func (r *MemoryRepo) List(ctx context.Context, ownerID string) ([]JobWithDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	jobs := make([]Job, 0, len(r.byID))
	for _, job := range r.byID {
		jobs = append(jobs, job)
	}
	r.mu.RUnlock()

	var out []JobWithDocument
	for _, job := range jobs {
		doc, err := r.docs.GetByID(ctx, job.DocumentID)
		if err != nil {
			if errors.Is(err, documents.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if ownerID != "" && doc.OwnerID != ownerID {
			continue
		}
		out = append(out, JobWithDocument{Job: job, Document: doc})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus overwrites status and updatedAt unconditionally. Transitions
// are not validated and stale callbacks win: last write wins.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, jobID, status string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	job.Status = status
	job.UpdatedAt = time.Now().UTC()
	r.byID[jobID] = job
	return job, nil
}

var _ Repo = (*MemoryRepo)(nil)
