package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"document-backend/internal/access"
	"document-backend/internal/shared/server/middleware"
	"document-backend/internal/shared/server/respond"
)

// Handler wires identity-management HTTP handlers to the service.
// All routes except self-view are restricted to Admin via the role table;
// denial here is a hard authorization fault, unlike the document endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.create)
	rg.GET("/users", h.list)
	rg.GET("/users/:id", h.get)
	rg.PATCH("/users/:id", h.update)
	rg.DELETE("/users/:id", h.remove)
}

// RoleTable lists the admin-only user routes for the role guard.
func (h *Handler) RoleTable(basePath string) middleware.RoleTable {
	admin := []access.Role{access.RoleAdmin}
	return middleware.RoleTable{
		"POST " + basePath + "/users":       admin,
		"GET " + basePath + "/users":        admin,
		"PATCH " + basePath + "/users/:id":  admin,
		"DELETE " + basePath + "/users/:id": admin,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, access.ParseRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			respond.Error(c, http.StatusConflict, "duplicate_identity", "user with this email already exists", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user.Public(),
	})
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}

	out := make([]PublicUser, 0, len(all))
	for _, user := range all {
		out = append(out, user.Public())
	}
	respond.OK(c, out)
}

// get allows self-view for any identity; viewing others requires Admin.
func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	caller := middleware.IdentityFromContext(c)
	if !access.CanAccess(caller, id) {
		respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
		return
	}

	user, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user.Public())
}

func (h *Handler) update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	var role *access.Role
	if req.Role != nil {
		parsed := access.Role(*req.Role)
		role = &parsed
	}

	user, err := h.Svc.Update(c.Request.Context(), c.Param("id"), UpdateParams{
		Email:    req.Email,
		Role:     role,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrDuplicateEmail):
			respond.Error(c, http.StatusConflict, "duplicate_identity", "user with this email already exists", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update user", nil)
		}
		return
	}
	respond.OK(c, user.Public())
}

func (h *Handler) remove(c *gin.Context) {
	user, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete user", nil)
		}
		return
	}
	respond.OK(c, gin.H{
		"message": "User deleted successfully",
		"user":    user.Public(),
	})
}
