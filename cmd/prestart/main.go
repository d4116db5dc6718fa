package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sige/internal/config"
	"sige/internal/migration"
	"sige/internal/shared/connection"
)

// prestart runs the schema migrations and exits. With
// STRICT_MIGRATIONS=true any failing unit aborts the run and the
// process exits non-zero so the deploy stops before the API starts.
func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, 5)
	if err != nil {
		logger.Error("database connection failed", zap.Error(err))
		os.Exit(1)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Error("get sql.DB failed", zap.Error(err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	runner := migration.NewRunner(sqlDB, cfg.StrictMigrations, logger)
	if err := runner.Run(context.Background()); err != nil {
		logger.Error("migrations failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("migrations complete")
}
