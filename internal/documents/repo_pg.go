package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo persists documents in Postgres.
type PGRepo struct {
	DB *sql.DB
}

const docColumns = `id, title, content, owner_id, file_path, status, mime_type, size_bytes, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, title, content, owner_id, file_path, status, mime_type, size_bytes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.OwnerID,
		doc.FilePath,
		doc.Status,
		doc.MimeType,
		doc.SizeBytes,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, docID string) (Document, error) {
	query := `SELECT ` + docColumns + ` FROM documents WHERE id = $1 LIMIT 1`
	return scanDoc(r.DB.QueryRowContext(ctx, query, docID))
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Document, error) {
	query := `SELECT ` + docColumns + ` FROM documents ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocs(rows)
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	query := `SELECT ` + docColumns + ` FROM documents WHERE owner_id = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocs(rows)
}

func (r *PGRepo) Update(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents
SET title = $2, content = $3, file_path = $4, status = $5, mime_type = $6, size_bytes = $7, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.FilePath,
		doc.Status,
		doc.MimeType,
		doc.SizeBytes,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, docID string) (Document, error) {
	query := `DELETE FROM documents WHERE id = $1 RETURNING ` + docColumns
	return scanDoc(r.DB.QueryRowContext(ctx, query, docID))
}

func scanDoc(row *sql.Row) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&doc.OwnerID,
		&doc.FilePath,
		&doc.Status,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func collectDocs(rows *sql.Rows) ([]Document, error) {
	var out []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&doc.OwnerID,
			&doc.FilePath,
			&doc.Status,
			&doc.MimeType,
			&doc.SizeBytes,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
