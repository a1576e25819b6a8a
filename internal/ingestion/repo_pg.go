package ingestion

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo persists ingestion jobs in Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO ingestions (id, document_id, status, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())`
	_, err := r.DB.ExecContext(ctx, query, job.ID, job.DocumentID, job.Status)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, document_id, status, created_at, updated_at
FROM ingestions
WHERE id = $1
LIMIT 1`
	var job Job
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID, &job.DocumentID, &job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

const joinedColumns = `
i.id, i.document_id, i.status, i.created_at, i.updated_at,
d.id, d.title, d.content, d.owner_id, d.file_path, d.status, d.mime_type, d.size_bytes, d.created_at, d.updated_at`

func (r *PGRepo) GetWithDocument(ctx context.Context, jobID string) (JobWithDocument, error) {
	query := `
SELECT ` + joinedColumns + `
FROM ingestions i
JOIN documents d ON d.id = i.document_id
WHERE i.id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, jobID)
	out, err := scanJoined(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobWithDocument{}, ErrNotFound
		}
		return JobWithDocument{}, err
	}
	return out, nil
}

func (r *PGRepo) List(ctx context.Context, ownerID string) ([]JobWithDocument, error) {
	query := `
SELECT ` + joinedColumns + `
FROM ingestions i
JOIN documents d ON d.id = i.document_id`
	args := []any{}
	if ownerID != "" {
		query += `
WHERE d.owner_id = $1`
		args = append(args, ownerID)
	}
	query += `
ORDER BY i.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobWithDocument
	for rows.Next() {
		item, err := scanJoined(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateStatus overwrites status and updatedAt unconditionally. Transitions
// are not validated and stale callbacks win: last write wins.
func (r *PGRepo) UpdateStatus(ctx context.Context, jobID, status string) (Job, error) {
	const query = `
UPDATE ingestions
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, document_id, status, created_at, updated_at`
	var job Job
	err := r.DB.QueryRowContext(ctx, query, jobID, status).Scan(
		&job.ID, &job.DocumentID, &job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func scanJoined(scan func(dest ...any) error) (JobWithDocument, error) {
	var out JobWithDocument
	err := scan(
		&out.ID, &out.DocumentID, &out.Status, &out.CreatedAt, &out.UpdatedAt,
		&out.Document.ID, &out.Document.Title, &out.Document.Content, &out.Document.OwnerID,
		&out.Document.FilePath, &out.Document.Status, &out.Document.MimeType,
		&out.Document.SizeBytes, &out.Document.CreatedAt, &out.Document.UpdatedAt,
	)
	if err != nil {
		return JobWithDocument{}, err
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
