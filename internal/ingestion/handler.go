package ingestion

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"document-backend/internal/access"
	"document-backend/internal/shared/server/middleware"
	"document-backend/internal/shared/server/respond"
)

// Handler wires ingestion HTTP handlers to the service.
//
// Unlike the document endpoints, trigger and status failures are hard 404s:
// a caller probing another owner's document gets the same response as for a
// document that does not exist.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches ingestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ingestion/trigger/:documentId", h.trigger)
	rg.GET("/ingestion/status/:id", h.status)
	rg.GET("/ingestion", h.list)
	rg.POST("/ingestion/webhook/status/:id", h.webhook)
}

// RoleTable restricts trigger to roles allowed to start ingestion.
func (h *Handler) RoleTable(basePath string) middleware.RoleTable {
	return middleware.RoleTable{
		"POST " + basePath + "/ingestion/trigger/:documentId": {access.RoleAdmin, access.RoleEditor},
	}
}

func (h *Handler) trigger(c *gin.Context) {
	documentID := c.Param("documentId")
	c.Set("documentId", documentID)

	job, err := h.Svc.Trigger(c.Request.Context(), documentID, middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", fmt.Sprintf("Document with ID %s not found", documentID), nil)
			return
		}
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to trigger ingestion", nil)
		return
	}

	c.Set("ingestionId", job.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"message":   "Ingestion triggered successfully",
		"ingestion": job,
	})
}

func (h *Handler) status(c *gin.Context) {
	id := c.Param("id")
	c.Set("ingestionId", id)

	job, err := h.Svc.GetStatus(c.Request.Context(), id, middleware.IdentityFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Ingestion not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to retrieve ingestion", nil)
		return
	}

	respond.OK(c, gin.H{
		"message":   "Ingestion status retrieved successfully",
		"ingestion": job,
	})
}

func (h *Handler) list(c *gin.Context) {
	jobs, err := h.Svc.ListAll(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to retrieve ingestions", nil)
		return
	}

	if jobs == nil {
		jobs = []JobWithDocument{}
	}
	respond.OK(c, gin.H{
		"message":    "Ingestions retrieved successfully",
		"ingestions": jobs,
	})
}

func (h *Handler) webhook(c *gin.Context) {
	id := c.Param("id")
	c.Set("ingestionId", id)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Ingestion not found", nil)
			return
		}
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update ingestion", nil)
		return
	}

	respond.OK(c, gin.H{
		"message":   "Ingestion status updated successfully",
		"ingestion": job,
	})
}
