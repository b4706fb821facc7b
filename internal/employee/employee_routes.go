package employee

import (
	"qr-attendance/internal/middleware"
	"qr-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer rbac.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		employees.POST("", rbac.Authorize(enforcer, "employees", "create"), h.Create)
		employees.GET("", rbac.Authorize(enforcer, "employees", "read"), h.GetAll)
		employees.GET("/options", rbac.Authorize(enforcer, "employees", "read"), h.GetOptions)
		employees.GET("/:id", rbac.Authorize(enforcer, "employees", "read"), h.GetByID)
		employees.PUT("/:id", rbac.Authorize(enforcer, "employees", "update"), h.Update)
		employees.DELETE("/:id", rbac.Authorize(enforcer, "employees", "delete"), h.Delete)
	}
}
