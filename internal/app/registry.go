package app

import (
	"database/sql"
	"net/http"

	"qr-attendance/internal/attendance"
	"qr-attendance/internal/auth"
	"qr-attendance/internal/employee"
	"qr-attendance/internal/messaging/kafka"
	"qr-attendance/internal/middleware"
	"qr-attendance/internal/profile"
	"qr-attendance/internal/qrcode"
	"qr-attendance/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	codec := qrcode.NewCodec()

	// --- Services ---
	authService := auth.NewService(authRepo)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, codec, outboxRepo, rdb)
	profileService := profile.NewService(employeeRepo, codec)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	employeeHandler := employee.NewHandler(employeeService)
	profileHandler := profile.NewHandler(profileService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, enforcer, rdb)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		profile.RegisterRoutes(api, profileHandler, enforcer)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return nil
}
