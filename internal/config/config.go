package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env    string `env:"APP_ENV, default=development"`
	Port   string `env:"PORT, default=3000"`
	Portal string `env:"PORTAL_LABEL, default=HR"`

	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Company  CompanyConfig
	Payroll  PayrollConfig
	Limiters LimiterConfig
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER, default=postgres"`
	Host     string `env:"DB_HOST, default=localhost"`
	User     string `env:"DB_USER, default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME, default=payroll"`
	Port     string `env:"DB_PORT, default=5432"`
	SSLMode  string `env:"DB_SSLMODE, default=disable"`
	Path     string `env:"DB_PATH, default=payroll.db"`
	Retries  int    `env:"DB_MAX_RETRIES, default=5"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type KafkaConfig struct {
	Brokers      string        `env:"KAFKA_BROKERS"`
	PayslipTopic string        `env:"KAFKA_TOPIC_PAYSLIP_REQUESTED, default=payroll.payslip.requested.v1"`
	GroupID      string        `env:"KAFKA_GROUP_ID, default=payroll-payslip-generator"`
	PollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL, default=2s"`
	BatchSize    int           `env:"OUTBOX_BATCH_SIZE, default=50"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, default=change-me"`
	TokenTTL      time.Duration `env:"JWT_TTL, default=12h"`
	AdminUsername string        `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=admin"`
}

type CompanyConfig struct {
	Name    string `env:"COMPANY_NAME"`
	Address string `env:"COMPANY_ADDRESS"`
	TIN     string `env:"COMPANY_TIN"`
}

type PayrollConfig struct {
	OptionalFields []string `env:"PAYROLL_OPTIONAL_FIELDS, default=bonus,undertime,late"`
	MergePolicy    string   `env:"PAYROLL_MERGE_POLICY, default=sum"`
}

type LimiterConfig struct {
	LoginPerSecond float64 `env:"LOGIN_RATE_PER_SECOND, default=1"`
	LoginBurst     int     `env:"LOGIN_RATE_BURST, default=5"`
}

// Load membaca .env (jika ada) lalu environment variable.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return FromLookuper(ctx, envconfig.OsLookuper())
}

func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fields := cfg.Payroll.OptionalFields[:0]
	for _, f := range cfg.Payroll.OptionalFields {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	cfg.Payroll.OptionalFields = fields

	cfg.Payroll.MergePolicy = strings.ToLower(strings.TrimSpace(cfg.Payroll.MergePolicy))
	switch cfg.Payroll.MergePolicy {
	case "sum", "latest":
	default:
		return nil, fmt.Errorf("load config: PAYROLL_MERGE_POLICY must be sum or latest, got %q", cfg.Payroll.MergePolicy)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (k KafkaConfig) Enabled() bool {
	return strings.TrimSpace(k.Brokers) != ""
}

func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
