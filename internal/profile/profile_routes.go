package profile

import (
	"qr-attendance/internal/middleware"
	"qr-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer rbac.Enforcer) {
	p := r.Group("/profile")
	p.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		p.GET("", rbac.Authorize(enforcer, "profile", "read"), h.Get)
		p.PUT("", rbac.Authorize(enforcer, "profile", "update"), h.Update)
	}
}
