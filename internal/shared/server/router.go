package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authpkg "document-backend/internal/auth"
	"document-backend/internal/documents"
	"document-backend/internal/ingestion"
	"document-backend/internal/shared/config"
	"document-backend/internal/shared/metrics"
	"document-backend/internal/shared/server/middleware"
	"document-backend/internal/shared/server/respond"
	"document-backend/internal/users"
)

const apiBasePath = "/api/v1"

// RouterDeps carries the handlers the router wires up. Nil handlers are
// skipped so tests can build partial routers.
type RouterDeps struct {
	Config           config.Config
	AuthHandler      *authpkg.Handler
	GoogleAuth       *authpkg.GoogleService
	UserHandler      *users.Handler
	DocumentHandler  *documents.Handler
	IngestionHandler *ingestion.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// The role guard runs after Auth with the merged per-handler role tables.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	roleTable := middleware.RoleTable{}
	if deps.UserHandler != nil {
		mergeRoleTable(roleTable, deps.UserHandler.RoleTable(apiBasePath))
	}
	if deps.IngestionHandler != nil {
		mergeRoleTable(roleTable, deps.IngestionHandler.RoleTable(apiBasePath))
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RoleGuard(roleTable),
		middleware.RateLimit(authRateLimit()),
	)

	api := r.Group(apiBasePath)
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.IngestionHandler != nil {
		deps.IngestionHandler.RegisterRoutes(api)
	}

	return r
}

func mergeRoleTable(dst, src middleware.RoleTable) {
	for route, roles := range src {
		dst[route] = roles
	}
}

// authRateLimit throttles credential endpoints per client; everything else
// passes through untouched.
func authRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"AUTH": {Rate: 1, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			path := c.FullPath()
			if strings.HasSuffix(path, "/auth/register") || strings.HasSuffix(path, "/auth/login") {
				return "AUTH"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
