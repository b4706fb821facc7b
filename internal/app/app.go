package app

import (
	"os"

	"qr-attendance/internal/attendance"
	"qr-attendance/internal/employee"
	"qr-attendance/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(&employee.Employee{}, &attendance.AttendanceRecord{}); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	// Outbox table is written through raw SQL, not gorm
	if _, err := sqlDB.Exec(outboxSchema); err != nil {
		return err
	}

	// Redis is optional; without it idempotency and caching degrade to no-ops
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		zap.L().Info("redis connection established")
	} else {
		zap.L().Warn("REDIS_ADDR not set, running without redis")
	}

	return registerModules(router, sqlDB, gormDB, rdb)
}
