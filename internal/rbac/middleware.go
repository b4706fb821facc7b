package rbac

import (
	"net/http"

	"qr-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize checks the role claim set by the auth middleware against the
// static policy.
func Authorize(enforcer Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied. Admin privileges required.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
