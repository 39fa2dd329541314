package app

import (
	"context"
	"fmt"

	"go-payroll/internal/config"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/messaging/kafka/producer"
	"go-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes outbox rows to kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if !cfg.Kafka.Enabled() {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	a, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.BrokerList(), 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(a.GormDB)

	producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		producer.WorkerConfig{
			PollInterval: cfg.Kafka.PollInterval,
			BatchSize:    cfg.Kafka.BatchSize,
		},
	)

	logger.Info("worker shutting down")
	return nil
}
