package app

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-timesheet/internal/notification"
	"go-timesheet/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers every module's
// routes on the router.
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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		zap.L().Warn("redis unavailable, drafts and option caches disabled", zap.Error(err))
		redisClient = nil
	} else {
		zap.L().Info("redis connection established")
	}

	sender := notification.FromEnv(context.Background(), zap.L())

	return registerModules(router, sqlDB, gormDB, redisClient, sender)
}
