package workerproc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"document-backend/internal/documents"
	"document-backend/internal/ingestion"
	"document-backend/internal/queue"
)

type stubStore struct {
	objects map[string][]byte
}

func (s *stubStore) Save(_ context.Context, _ string, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	s.objects[fileName] = data
	return fileName, int64(len(data)), "text/plain", nil
}

func (s *stubStore) Open(_ context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func newTestProcessor() (*Processor, documents.Repo, *stubStore) {
	docs := documents.NewMemoryRepo()
	store := &stubStore{objects: map[string][]byte{}}
	svc := ingestion.NewService(ingestion.NewMemoryRepo(docs), docs, nil)
	return &Processor{Ingestions: svc, Docs: docs, Store: store}, docs, store
}

func seedJob(t *testing.T, p *Processor, docs documents.Repo, filePath string) (documents.Document, ingestion.Job) {
	t.Helper()
	ctx := context.Background()
	doc := documents.Document{
		ID:       "doc-1",
		Title:    "report",
		OwnerID:  "owner-1",
		FilePath: filePath,
		MimeType: "text/plain",
		Status:   documents.StatusActive,
	}
	if err := docs.Create(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	job, err := p.Ingestions.Trigger(ctx, doc.ID, doc.OwnerID)
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	return doc, job
}

func TestParseMessageRejectsBadPayloads(t *testing.T) {
	if _, _, err := ParseMessage("   "); !errors.As(err, &ErrEmptyBody{}) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
	if _, _, err := ParseMessage("{not json"); !errors.As(err, &ErrDecode{}) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if _, _, err := ParseMessage(`{"documentId":"doc-1"}`); !errors.As(err, &ErrMissingIngestionID{}) {
		t.Fatalf("expected ErrMissingIngestionID, got %v", err)
	}
}

func TestHandleMessageCompletesJob(t *testing.T) {
	p, docs, store := newTestProcessor()
	ctx := context.Background()
	store.objects["files/report.txt"] = []byte("extracted body")
	doc, job := seedJob(t, p, docs, "files/report.txt")

	body, err := queue.EncodeMessage(queue.Message{
		DocumentID:  doc.ID,
		IngestionID: job.ID,
		FilePath:    doc.FilePath,
	})
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	if err := p.HandleMessage(ctx, string(body)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	got, err := p.Ingestions.Repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != ingestion.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}

	updated, err := docs.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Content != "extracted body" {
		t.Fatalf("expected document content updated, got %q", updated.Content)
	}
}

func TestHandleMessageMarksFailedOnMissingFile(t *testing.T) {
	p, docs, _ := newTestProcessor()
	ctx := context.Background()
	doc, job := seedJob(t, p, docs, "files/absent.txt")

	body, err := queue.EncodeMessage(queue.Message{
		DocumentID:  doc.ID,
		IngestionID: job.ID,
		FilePath:    doc.FilePath,
	})
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	var procErr ErrProcess
	if err := p.HandleMessage(ctx, string(body)); !errors.As(err, &procErr) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if procErr.IngestionID != job.ID {
		t.Fatalf("error bound to wrong job: %s", procErr.IngestionID)
	}

	got, err := p.Ingestions.Repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != ingestion.StatusFailed {
		t.Fatalf("expected FAILED, got %s", got.Status)
	}
}

func TestHandleMessageUnknownJob(t *testing.T) {
	p, _, _ := newTestProcessor()

	body := `{"documentId":"doc-1","ingestionId":"no-such-job","filePath":"f"}`
	var procErr ErrProcess
	if err := p.HandleMessage(context.Background(), body); !errors.As(err, &procErr) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if !errors.Is(procErr.Err, ingestion.ErrNotFound) {
		t.Fatalf("expected ErrNotFound cause, got %v", procErr.Err)
	}
}
