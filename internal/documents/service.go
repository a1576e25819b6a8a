package documents

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"document-backend/internal/shared/storage/object"
)

// Service contains business logic for documents.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store}
}

// Create records a new document owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID, title, content, filePath string) (Document, error) {
	title = strings.TrimSpace(title)
	if ownerID == "" || title == "" {
		return Document{}, ErrInvalidInput
	}

	doc := Document{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		OwnerID:   ownerID,
		FilePath:  filePath,
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get fetches a single document.
func (s *Service) Get(ctx context.Context, docID string) (Document, error) {
	if docID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, docID)
}

// ListAll returns every document.
func (s *Service) ListAll(ctx context.Context) ([]Document, error) {
	return s.Repo.ListAll(ctx)
}

// ListByOwner returns documents owned by ownerID.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

// UpdateParams are the mutable document fields; nil means leave unchanged.
type UpdateParams struct {
	Title    *string
	Content  *string
	FilePath *string
	Status   *string
}

// Update applies the given fields to an existing document.
func (s *Service) Update(ctx context.Context, docID string, params UpdateParams) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, docID)
	if err != nil {
		return Document{}, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return Document{}, ErrInvalidInput
		}
		doc.Title = title
	}
	if params.Content != nil {
		doc.Content = *params.Content
	}
	if params.FilePath != nil {
		doc.FilePath = *params.FilePath
	}
	if params.Status != nil {
		if !validStatus(*params.Status) {
			return Document{}, ErrInvalidInput
		}
		doc.Status = *params.Status
	}

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Delete removes a document and returns the deleted record.
func (s *Service) Delete(ctx context.Context, docID string) (Document, error) {
	if docID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.Delete(ctx, docID)
}

// AttachFile stores the uploaded file and points the document at it.
func (s *Service) AttachFile(ctx context.Context, docID, fileName string, r io.Reader) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, docID)
	if err != nil {
		return Document{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, doc.OwnerID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc.FilePath = storageKey
	doc.MimeType = mimeType
	doc.SizeBytes = size
	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// OpenFile opens the document's stored file for reading.
func (s *Service) OpenFile(ctx context.Context, doc Document) (io.ReadCloser, error) {
	if doc.FilePath == "" {
		return nil, ErrNotFound
	}
	return s.Store.Open(ctx, doc.FilePath)
}
