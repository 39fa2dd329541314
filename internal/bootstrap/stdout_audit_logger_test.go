package bootstrap

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))
	l.now = func() time.Time { return time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC) }

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	l.Log(ctx, AuditLog{
		Actor:   "admin",
		Action:  "PAYROLL_MERGE",
		Message: "duplicates merged",
		Meta:    map[string]any{"removed": 2},
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "2025-08-20T09:00:00Z", fields["timestamp"])
	assert.Equal(t, "PAYROLL_MERGE", fields["action"])
	assert.Equal(t, "admin", fields["actor"])
	assert.Equal(t, "req-1", fields["request_id"])
}
