package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-payroll/internal/auth"
	"go-payroll/internal/company"
	"go-payroll/internal/config"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the opened infrastructure shared by the API, the worker, the
// consumer and payrollctl.
type App struct {
	Config *config.Config
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
	Logger *zap.Logger
}

// Open connects the database (and redis when REDIS_ADDR is set) and migrates
// the schema.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}

	gormDB, err := connection.ConnectGORMWithRetry(connection.DBConfig{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Name:     cfg.DB.Name,
		Port:     cfg.DB.Port,
		SSLMode:  cfg.DB.SSLMode,
		Path:     cfg.DB.Path,
	}, cfg.DB.Retries)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := Migrate(gormDB.WithContext(ctx)); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	a := &App{Config: cfg, GormDB: gormDB, DB: sqlDB, Logger: logger}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.DB, 5)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		a.Redis = rdb
	} else {
		logger.Warn("REDIS_ADDR not set, running without cache and idempotency")
	}

	return a, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&payroll.Payroll{},
		&payroll.PayslipArchive{},
		&auth.Credential{},
		&company.Company{},
		&kafka.OutboxEvent{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

// Healthy pings the database and, when configured, redis.
func (a *App) Healthy(ctx context.Context) map[string]string {
	status := map[string]string{"database": "ok"}
	if err := a.DB.PingContext(ctx); err != nil {
		status["database"] = err.Error()
	}
	if a.Redis != nil {
		status["redis"] = "ok"
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
		}
	}
	return status
}
