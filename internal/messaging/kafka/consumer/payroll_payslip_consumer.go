package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, payrollID uint) (*payroll.PayslipArchive, error)
}

const (
	defaultRetryBackoff    = time.Second
	defaultMaxRetryBackoff = time.Minute
)

// ConsumerConfig bounds the backoff between attempts on a message that failed
// for a transient reason.
type ConsumerConfig struct {
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
}

func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = defaultRetryBackoff
	}
	if c.MaxRetryBackoff < c.RetryBackoff {
		c.MaxRetryBackoff = defaultMaxRetryBackoff
		if c.MaxRetryBackoff < c.RetryBackoff {
			c.MaxRetryBackoff = c.RetryBackoff
		}
	}
	return c
}

// ConsumePayslipRequested handles messages one at a time. Offsets are a per
// partition high-water mark, so a failed message is retried in place until it
// succeeds; moving past it would let the next commit cover it.
func ConsumePayslipRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	logger *zap.Logger,
	cfg ConsumerConfig,
) {
	cfg = cfg.withDefaults()
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll payslip message failed", zap.Error(err))
			continue
		}

		if !handleWithRetry(ctx, msg, generator, log, cfg) {
			// uncommitted; the group redelivers it after restart
			log.Info("payroll payslip consumer stopped", zap.Int64("pending_offset", msg.Offset))
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll payslip message failed", zap.Error(err))
		}
	}
}

// handleWithRetry returns false only when ctx ends before msg succeeds.
func handleWithRetry(ctx context.Context, msg kafkago.Message, generator PayslipGenerator, log *zap.Logger, cfg ConsumerConfig) bool {
	wait := cfg.RetryBackoff
	for attempt := 1; ; attempt++ {
		if HandlePayslipRequested(ctx, msg, generator, log) {
			return true
		}

		log.Warn("payroll payslip message will be retried",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		wait *= 2
		if wait > cfg.MaxRetryBackoff {
			wait = cfg.MaxRetryBackoff
		}
	}
}

// HandlePayslipRequested processes one message and reports whether it may be
// committed. Poison messages and deleted payroll rows are committed so they do
// not block the partition.
func HandlePayslipRequested(ctx context.Context, msg kafkago.Message, generator PayslipGenerator, log *zap.Logger) bool {
	for _, h := range msg.Headers {
		if h.Key == "request_id" && len(h.Value) > 0 {
			ctx = contextutil.WithRequestID(ctx, string(h.Value))
		}
	}

	var event events.PayslipRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll payslip event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}
	if event.PayrollID == 0 {
		log.Error("payroll payslip event without payroll id", zap.Int64("offset", msg.Offset))
		return true
	}

	archive, err := generator.GeneratePayslip(ctx, event.PayrollID)
	if err != nil {
		if errors.Is(err, payrollerrors.ErrPayrollNotFound) {
			log.Warn("payroll row gone, skipping payslip",
				zap.Uint("payroll_id", event.PayrollID),
				zap.String("emp_id", event.EmployeeID),
			)
			return true
		}
		log.Error("generate payslip failed",
			zap.Uint("payroll_id", event.PayrollID),
			zap.String("emp_id", event.EmployeeID),
			zap.Error(err),
		)
		return false
	}

	log.Info("payroll payslip generated",
		zap.Uint("payroll_id", event.PayrollID),
		zap.String("emp_id", event.EmployeeID),
		zap.String("period", event.PeriodStart+" - "+event.PeriodEnd),
		zap.String("filename", archive.Filename),
	)
	return true
}
