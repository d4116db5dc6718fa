package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sige/internal/config"
	"sige/internal/migration"
	"sige/internal/shared/connection"
)

// BuildApp wires infrastructure, runs pending migrations and registers
// every module's routes on the router.
func BuildApp(router *gin.Engine) error {
	cfg := config.Load()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, 5)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	runner := migration.NewRunner(sqlDB, cfg.StrictMigrations, zap.L())
	if err := runner.Run(context.Background()); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	return registerModules(router, gormDB, rdb, cfg)
}
