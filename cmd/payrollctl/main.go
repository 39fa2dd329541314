package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-payroll/internal/app"
	"go-payroll/internal/cli"
	"go-payroll/internal/config"
	"go-payroll/internal/shared/apperror"

	"go.uber.org/zap"
)

func load(ctx context.Context) (*cli.Deps, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	a, err := app.Open(ctx, cfg, zap.L())
	if err != nil {
		return nil, err
	}
	svc, err := a.Services()
	if err != nil {
		a.Close()
		return nil, err
	}

	return &cli.Deps{
		Payroll:       svc.Payroll,
		Bulk:          svc.Bulk,
		Auth:          svc.Auth,
		AdminUsername: cfg.Auth.AdminUsername,
		AdminPassword: cfg.Auth.AdminPassword,
		Close:         a.Close,
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// only warnings reach stderr; command output owns stdout
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := logCfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := cli.NewRootCommand(load).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
