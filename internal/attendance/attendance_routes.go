package attendance

import (
	"qr-attendance/internal/middleware"
	"qr-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer rbac.Enforcer, rdb *redis.Client) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		attendances.POST("/mark", rbac.Authorize(enforcer, "attendance", "mark"), middleware.Idempotency(rdb), h.Mark)
		attendances.GET("/personal", rbac.Authorize(enforcer, "attendance", "read"), h.Personal)
		attendances.GET("/report", rbac.Authorize(enforcer, "report", "read"), h.Report)
	}
}
