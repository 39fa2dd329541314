package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
)

func TestFromLookuper_Defaults(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "admin", cfg.Auth.AdminPassword)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"bonus", "undertime", "late"}, cfg.Payroll.OptionalFields)
	assert.Equal(t, "sum", cfg.Payroll.MergePolicy)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestFromLookuper_Overrides(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"PAYROLL_MERGE_POLICY":    " Latest ",
		"PAYROLL_OPTIONAL_FIELDS": "bonus, late",
		"KAFKA_BROKERS":           "k1:9092, k2:9092,",
		"COMPANY_NAME":            "Acme Corp",
	}))
	assert.NoError(t, err)
	assert.Equal(t, "latest", cfg.Payroll.MergePolicy)
	assert.Equal(t, []string{"bonus", "late"}, cfg.Payroll.OptionalFields)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.BrokerList())
	assert.Equal(t, "Acme Corp", cfg.Company.Name)
}

func TestFromLookuper_InvalidMergePolicy(t *testing.T) {
	_, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"PAYROLL_MERGE_POLICY": "average",
	}))
	assert.Error(t, err)
}
