package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"document-backend/internal/access"
	"document-backend/internal/shared/server/middleware"
	"document-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires document HTTP handlers to the service.
//
// Read/update/delete run the lookup first and convert policy denials and
// missing records into successful message envelopes rather than faults. That
// asymmetry with the identity endpoints is a deliberate contract.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/document/create", h.create)
	rg.GET("/document", h.list)
	rg.GET("/document/:id", h.get)
	rg.PATCH("/document/:id", h.update)
	rg.DELETE("/document/:id", h.remove)
	rg.POST("/document/:id/file", h.uploadFile)
	rg.GET("/document/:id/file", h.downloadFile)
}

func (h *Handler) create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ownerID := middleware.UserIDFromContext(c)
	doc, err := h.Svc.Create(c.Request.Context(), ownerID, req.Title, req.Content, req.FilePath)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create document", nil)
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"message":  "Document created successfully",
		"document": doc,
	})
}

// list returns all documents for admins and owned documents for everyone else.
func (h *Handler) list(c *gin.Context) {
	caller := middleware.IdentityFromContext(c)

	var (
		docs []Document
		err  error
	)
	if caller.Role == access.RoleAdmin {
		docs, err = h.Svc.ListAll(c.Request.Context())
	} else {
		docs, err = h.Svc.ListByOwner(c.Request.Context(), caller.ID)
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to retrieve documents", nil)
		return
	}

	if docs == nil {
		docs = []Document{}
	}
	respond.OK(c, gin.H{
		"message":   "Documents retrieved successfully",
		"documents": docs,
	})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("documentId", id)

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Message(c, fmt.Sprintf("Document with ID %s not found", id))
			return
		}
		respond.Message(c, fmt.Sprintf("Error finding document with ID %s", id))
		return
	}

	if !access.CanAccess(middleware.IdentityFromContext(c), doc.OwnerID) {
		respond.Message(c, "You do not have permission to access this document")
		return
	}

	respond.OK(c, gin.H{
		"message":  fmt.Sprintf("Document with ID %s found successfully", id),
		"document": doc,
	})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("documentId", id)

	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Message(c, fmt.Sprintf("Document with ID %s not found", id))
		return
	}
	if !access.CanAccess(middleware.IdentityFromContext(c), doc.OwnerID) {
		respond.Message(c, "You do not have permission to update this document")
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), id, UpdateParams{
		Title:    req.Title,
		Content:  req.Content,
		FilePath: req.FilePath,
		Status:   req.Status,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Message(c, fmt.Sprintf("Error updating document with ID %s", id))
		return
	}

	respond.OK(c, gin.H{
		"message":  fmt.Sprintf("Document with ID %s updated successfully", id),
		"document": updated,
	})
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	c.Set("documentId", id)

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Message(c, fmt.Sprintf("Document with ID %s not found", id))
		return
	}
	if !access.CanAccess(middleware.IdentityFromContext(c), doc.OwnerID) {
		respond.Message(c, "You do not have permission to delete this document")
		return
	}

	deleted, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Message(c, fmt.Sprintf("Document with ID %s not found", id))
			return
		}
		respond.Message(c, fmt.Sprintf("Error deleting document with ID %s", id))
		return
	}

	respond.OK(c, gin.H{
		"message":  fmt.Sprintf("Document with ID %s deleted successfully", id),
		"document": deleted,
	})
}

func (h *Handler) uploadFile(c *gin.Context) {
	id := c.Param("id")
	c.Set("documentId", id)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Message(c, fmt.Sprintf("Document with ID %s not found", id))
		return
	}
	if !access.CanAccess(middleware.IdentityFromContext(c), doc.OwnerID) {
		respond.Message(c, "You do not have permission to update this document")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	updated, err := h.Svc.AttachFile(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("File attached to document %s", id),
		"document": updated,
	})
}

func (h *Handler) downloadFile(c *gin.Context) {
	id := c.Param("id")
	c.Set("documentId", id)

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Message(c, fmt.Sprintf("Document with ID %s not found", id))
		return
	}
	if !access.CanAccess(middleware.IdentityFromContext(c), doc.OwnerID) {
		respond.Message(c, "You do not have permission to access this document")
		return
	}

	body, err := h.Svc.OpenFile(c.Request.Context(), doc)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Message(c, fmt.Sprintf("Document with ID %s has no stored file", id))
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open file", nil)
		return
	}
	defer body.Close()

	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, doc.SizeBytes, contentType, body, nil)
}
