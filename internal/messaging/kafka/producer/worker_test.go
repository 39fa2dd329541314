package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/messaging/kafka"
	kafkaMock "go-payroll/internal/messaging/kafka/mock"
	"go-payroll/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	fail     map[string]error
	messages []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.fail[string(m.Key)]; err != nil {
			return err
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func outboxEvent(id, aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-1",
		AggregateType: "payroll",
		AggregateID:   aggregateID,
		EventType:     "payroll.payslip.requested",
		Topic:         "payroll.payslip.requested.v1",
		Payload:       []byte(`{"payroll_id":` + aggregateID + `}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{outboxEvent("a", "1"), outboxEvent("b", "2")}, nil)
		repo.EXPECT().MarkSent(ctx, "a").Return(nil)
		repo.EXPECT().MarkSent(ctx, "b").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 10)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Len(t, writer.messages, 2)

		msg := writer.messages[0]
		assert.Equal(t, "payroll.payslip.requested.v1", msg.Topic)
		assert.Equal(t, []byte("1"), msg.Key)
		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "payroll.payslip.requested", headers["event_type"])
		assert.Equal(t, "a", headers["outbox_id"])
		assert.Equal(t, "req-1", headers["request_id"])
	})

	t.Run("failed publish is marked for retry and the batch continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{fail: map[string]error{"1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{outboxEvent("a", "1"), outboxEvent("b", "2")}, nil)
		repo.EXPECT().MarkFailed(ctx, "a", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "b").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 50)
		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 50)
		assert.EqualError(t, err, "db down")
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), producer.WorkerConfig{})
		close(done)
	}()
	cancel()
	<-done
}
