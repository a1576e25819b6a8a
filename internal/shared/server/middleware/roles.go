package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"document-backend/internal/access"
	"document-backend/internal/shared/server/respond"
)

// RoleTable maps a route identifier (method + space + gin route pattern) to
// the roles allowed to call it. Routes absent from the table are open to any
// authenticated identity. The table is evaluated before handlers run; a
// caller whose role is not listed is rejected with a hard authorization fault.
type RoleTable map[string][]access.Role

// RoleGuard enforces the role table. It relies on Auth having stored the
// caller's role in context.
func RoleGuard(table RoleTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.FullPath()
		allowed, ok := table[route]
		if !ok {
			c.Next()
			return
		}

		role := UserRoleFromContext(c)
		for _, want := range allowed {
			if role == want {
				c.Next()
				return
			}
		}
		respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
	}
}
