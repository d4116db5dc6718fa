package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sige/internal/config"
	"sige/internal/messaging/kafka"
	"sige/internal/messaging/kafka/producer"
	"sige/internal/shared/connection"
)

// RunWorker polls outbox_events and mirrors them to the broker until
// SIGINT/SIGTERM.
func RunWorker() error {
	logger := zap.L().Named("app.worker")
	cfg := config.Load()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter := connection.NewKafkaWriter(cfg.KafkaBrokers)
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
