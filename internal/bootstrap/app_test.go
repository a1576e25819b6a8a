package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"document-backend/internal/ingestion"
	"document-backend/internal/queue"
	"document-backend/internal/shared/config"
)

type captureQueue struct {
	sent []queue.Message
}

func (q *captureQueue) Send(_ context.Context, msg queue.Message) error {
	q.sent = append(q.sent, msg)
	return nil
}

func buildTestApp(t *testing.T) (*App, *captureQueue) {
	t.Helper()
	app, err := Build(config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	q := &captureQueue{}
	app.IngestionService.Queue = q
	return app, q
}

func doJSON(t *testing.T, app *App, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	parsed := map[string]any{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func registerAndLogin(t *testing.T, app *App, email, role string) (token, userID string) {
	t.Helper()
	rec, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"`+email+`","password":"pw123456","role":"`+role+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	user, _ := body["user"].(map[string]any)
	userID, _ = user["id"].(string)

	rec, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"`+email+`","password":"pw123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	token, _ = body["accessToken"].(string)
	if token == "" {
		t.Fatalf("login %s: missing accessToken", email)
	}
	return token, userID
}

func TestRegisterLoginAndDuplicate(t *testing.T) {
	app, _ := buildTestApp(t)

	token, userID := registerAndLogin(t, app, "a@x.com", "Editor")
	if userID == "" {
		t.Fatal("expected user id in register response")
	}

	rec, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"a@x.com","password":"other-pw1","role":"Viewer"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d", rec.Code)
	}
	errBody, _ := body["error"].(map[string]any)
	if errBody["code"] != "duplicate_identity" {
		t.Fatalf("expected duplicate_identity, got %v", body)
	}

	rec, body = doJSON(t, app, http.MethodGet, "/api/v1/auth/profile", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: status %d", rec.Code)
	}
	if body["email"] != "a@x.com" || body["role"] != "Editor" {
		t.Fatalf("unexpected profile: %v", body)
	}
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	app, _ := buildTestApp(t)

	rec, _ := doJSON(t, app, http.MethodGet, "/api/v1/document", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodGet, "/api/v1/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health must be open, got %d", rec.Code)
	}
}

func TestDocumentSoftDenials(t *testing.T) {
	app, _ := buildTestApp(t)
	ownerToken, _ := registerAndLogin(t, app, "owner@x.com", "Editor")
	otherToken, _ := registerAndLogin(t, app, "other@x.com", "Editor")

	rec, body := doJSON(t, app, http.MethodPost, "/api/v1/document/create", ownerToken,
		`{"title":"Quarterly Report","content":"numbers"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create document: status %d body %s", rec.Code, rec.Body.String())
	}
	doc, _ := body["document"].(map[string]any)
	docID, _ := doc["id"].(string)
	if docID == "" {
		t.Fatal("expected document id")
	}

	// Foreign reads succeed at the transport level and deny in the body.
	rec, body = doJSON(t, app, http.MethodGet, "/api/v1/document/"+docID, otherToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("foreign get: status %d", rec.Code)
	}
	if body["message"] != "You do not have permission to access this document" {
		t.Fatalf("unexpected envelope: %v", body)
	}

	rec, body = doJSON(t, app, http.MethodDelete, "/api/v1/document/"+docID, otherToken, "")
	if rec.Code != http.StatusOK || body["message"] != "You do not have permission to delete this document" {
		t.Fatalf("foreign delete: status %d body %v", rec.Code, body)
	}

	rec, body = doJSON(t, app, http.MethodGet, "/api/v1/document/no-such-id", ownerToken, "")
	if rec.Code != http.StatusOK || body["message"] != "Document with ID no-such-id not found" {
		t.Fatalf("missing get: status %d body %v", rec.Code, body)
	}

	// The owner's list sees the document; a stranger's list does not.
	rec, body = doJSON(t, app, http.MethodGet, "/api/v1/document", otherToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	if docs, _ := body["documents"].([]any); len(docs) != 0 {
		t.Fatalf("stranger must see no documents, got %d", len(docs))
	}
}

func TestIngestionFlow(t *testing.T) {
	app, q := buildTestApp(t)
	ownerToken, _ := registerAndLogin(t, app, "owner@x.com", "Editor")
	otherToken, _ := registerAndLogin(t, app, "other@x.com", "Editor")

	rec, body := doJSON(t, app, http.MethodPost, "/api/v1/document/create", ownerToken,
		`{"title":"Quarterly Report","content":"numbers","filePath":"uploads/q.pdf"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create document: status %d", rec.Code)
	}
	doc, _ := body["document"].(map[string]any)
	docID, _ := doc["id"].(string)

	// A non-owner cannot learn the document exists.
	rec, _ = doJSON(t, app, http.MethodPost, "/api/v1/ingestion/trigger/"+docID, otherToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign trigger: expected 404, got %d", rec.Code)
	}
	if len(q.sent) != 0 {
		t.Fatalf("no message may be emitted on denial, got %d", len(q.sent))
	}

	rec, body = doJSON(t, app, http.MethodPost, "/api/v1/ingestion/trigger/"+docID, ownerToken, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("trigger: status %d body %s", rec.Code, rec.Body.String())
	}
	ing, _ := body["ingestion"].(map[string]any)
	ingestionID, _ := ing["id"].(string)
	if ing["status"] != ingestion.StatusPending {
		t.Fatalf("expected PENDING, got %v", ing["status"])
	}
	if len(q.sent) != 1 || q.sent[0].DocumentID != docID || q.sent[0].IngestionID != ingestionID || q.sent[0].FilePath != "uploads/q.pdf" {
		t.Fatalf("unexpected emitted message: %+v", q.sent)
	}

	// Status is owner-or-admin; strangers get the same 404 as a missing job.
	rec, _ = doJSON(t, app, http.MethodGet, "/api/v1/ingestion/status/"+ingestionID, otherToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign status: expected 404, got %d", rec.Code)
	}
	rec, body = doJSON(t, app, http.MethodGet, "/api/v1/ingestion/status/"+ingestionID, ownerToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}

	rec, body = doJSON(t, app, http.MethodPost, "/api/v1/ingestion/webhook/status/"+ingestionID, ownerToken,
		`{"status":"COMPLETED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("webhook: status %d body %s", rec.Code, rec.Body.String())
	}
	ing, _ = body["ingestion"].(map[string]any)
	if ing["status"] != ingestion.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %v", ing["status"])
	}

	rec, body = doJSON(t, app, http.MethodGet, "/api/v1/ingestion", ownerToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	if list, _ := body["ingestions"].([]any); len(list) != 1 {
		t.Fatalf("owner must see 1 ingestion, got %d", len(list))
	}
	rec, body = doJSON(t, app, http.MethodGet, "/api/v1/ingestion", otherToken, "")
	if list, _ := body["ingestions"].([]any); rec.Code != http.StatusOK || len(list) != 0 {
		t.Fatalf("stranger must see no ingestions, got status %d list %v", rec.Code, body["ingestions"])
	}
}

func TestRoleGuardOnAdminRoutes(t *testing.T) {
	app, _ := buildTestApp(t)
	viewerToken, viewerID := registerAndLogin(t, app, "viewer@x.com", "Viewer")

	rec, _ := doJSON(t, app, http.MethodGet, "/api/v1/users", viewerToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer listing users: expected 403, got %d", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodPost, "/api/v1/ingestion/trigger/some-doc", viewerToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer triggering: expected 403, got %d", rec.Code)
	}

	// Self-view stays open to any authenticated identity.
	rec, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/"+viewerID, viewerToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("self view: expected 200, got %d", rec.Code)
	}

	adminToken, _ := registerAndLogin(t, app, "admin@x.com", "Admin")
	rec, _ = doJSON(t, app, http.MethodGet, "/api/v1/users", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin listing users: expected 200, got %d", rec.Code)
	}
}
