package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"document-backend/internal/documents"
	"document-backend/internal/extract"
	"document-backend/internal/ingestion"
	"document-backend/internal/queue"
	"document-backend/internal/shared/storage/object"
	"document-backend/internal/shared/telemetry"
)

// Processor carries the collaborators needed to run one ingestion job.
type Processor struct {
	Ingestions *ingestion.Service
	Docs       documents.Repo
	Store      object.ObjectStore
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingIngestionID indicates a message without an ingestion id.
type ErrMissingIngestionID struct {
	Meta MessageMeta
}

func (e ErrMissingIngestionID) Error() string { return "missing ingestion id" }

// ErrProcess indicates processing failed after successful parsing. The job
// has already been marked FAILED when this is returned.
type ErrProcess struct {
	IngestionID string
	DocumentID  string
	Err         error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process ingestion"
	}
	return "process ingestion: " + e.Err.Error()
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.IngestionID) == "" {
		return msg, meta, ErrMissingIngestionID{Meta: meta}
	}
	return msg, meta, nil
}

// HandleMessage parses a trigger payload and runs the job: the job is moved
// to PROCESSING, the stored file is read and its text extracted into the
// document content, and the job ends COMPLETED or FAILED.
//
// A status write that races a concurrent webhook is not coordinated; the
// later write wins.
func (p *Processor) HandleMessage(ctx context.Context, body string) error {
	if p == nil || p.Ingestions == nil {
		return errors.New("ingestion service not configured")
	}

	msg, _, err := ParseMessage(body)
	if err != nil {
		return err
	}

	if _, err := p.Ingestions.UpdateStatus(ctx, msg.IngestionID, ingestion.StatusProcessing); err != nil {
		return ErrProcess{IngestionID: msg.IngestionID, DocumentID: msg.DocumentID, Err: err}
	}

	if err := p.runJob(ctx, msg); err != nil {
		if _, failErr := p.Ingestions.UpdateStatus(ctx, msg.IngestionID, ingestion.StatusFailed); failErr != nil {
			telemetry.Error("worker.mark_failed", map[string]any{
				"ingestion_id": msg.IngestionID,
				"error":        failErr.Error(),
			})
		}
		return ErrProcess{IngestionID: msg.IngestionID, DocumentID: msg.DocumentID, Err: err}
	}

	if _, err := p.Ingestions.UpdateStatus(ctx, msg.IngestionID, ingestion.StatusCompleted); err != nil {
		return ErrProcess{IngestionID: msg.IngestionID, DocumentID: msg.DocumentID, Err: err}
	}
	return nil
}

func (p *Processor) runJob(ctx context.Context, msg queue.Message) error {
	doc, err := p.Docs.GetByID(ctx, msg.DocumentID)
	if err != nil {
		return err
	}

	filePath := msg.FilePath
	if filePath == "" {
		filePath = doc.FilePath
	}
	if filePath == "" {
		return errors.New("document has no stored file")
	}

	text, err := extract.Text(ctx, p.Store, filePath, doc.MimeType)
	if err != nil {
		return err
	}

	doc.Content = text
	return p.Docs.Update(ctx, doc)
}
