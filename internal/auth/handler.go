package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"document-backend/internal/access"
	sharedauth "document-backend/internal/shared/auth"
	"document-backend/internal/shared/server/middleware"
	"document-backend/internal/shared/server/respond"
	"document-backend/internal/users"
)

// Handler exposes registration, login, logout and profile endpoints.
type Handler struct {
	Users *users.Service
}

// NewHandler constructs a Handler.
func NewHandler(usersSvc *users.Service) *Handler {
	return &Handler{Users: usersSvc}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/logout", h.logout)
	rg.GET("/auth/profile", h.profile)
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Email, req.Password, access.ParseRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateEmail):
			respond.Error(c, http.StatusConflict, "duplicate_identity", "user with this email already exists", nil)
		case errors.Is(err, users.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "registration failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}
	if user == nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		return
	}

	token, err := IssueToken(*user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	respond.OK(c, gin.H{
		"accessToken": token,
		"user":        user.Public(),
	})
}

// logout is a no-op in a stateless JWT setup; the client discards the token.
func (h *Handler) logout(c *gin.Context) {
	respond.OK(c, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) profile(c *gin.Context) {
	respond.OK(c, gin.H{
		"id":    middleware.UserIDFromContext(c),
		"email": middleware.UserEmailFromContext(c),
		"role":  middleware.UserRoleFromContext(c),
	})
}

// IssueToken produces a signed token embedding the identity snapshot.
func IssueToken(user users.User) (string, error) {
	return sharedauth.SignJWT(sharedauth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	})
}
