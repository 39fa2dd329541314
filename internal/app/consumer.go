package app

import (
	"context"
	"fmt"

	"go-payroll/internal/config"
	"go-payroll/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders and archives requested payslips until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if !cfg.Kafka.Enabled() {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	a, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.Services()
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.BrokerList(),
		Topic:          cfg.Kafka.PayslipTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumePayslipRequested(ctx, reader, svc.Payroll, logger, consumer.ConsumerConfig{})

	logger.Info("consumer shutting down")
	return nil
}
