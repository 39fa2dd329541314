package app

import (
	"context"
	"net/http"
	"time"

	"go-payroll/internal/auth"
	"go-payroll/internal/bulk"
	"go-payroll/internal/company"
	"go-payroll/internal/config"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/metrics"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Services are the feature services built on one App.
type Services struct {
	RBAC     rbac.Service
	Auth     auth.Service
	Employee employee.Service
	Company  company.Service
	Payroll  payroll.Service
	Bulk     bulk.Service
}

func (a *App) Services() (*Services, error) {
	cfg := a.Config

	schema, err := payroll.NewSchema(cfg.Payroll.OptionalFields...)
	if err != nil {
		return nil, err
	}
	policy, err := payroll.ParseMergePolicy(cfg.Payroll.MergePolicy)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	authRepo := auth.NewRepository(a.GormDB)
	employeeRepo := employee.NewRepository(a.GormDB)
	companyRepo := company.NewRepository(a.GormDB)
	payrollRepo := payroll.NewRepository(a.GormDB)
	outboxRepo := kafka.NewOutboxRepository(a.GormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return nil, err
	}

	// --- Services ---
	companyService := company.NewService(companyRepo, domain.CompanyProfile{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		TIN:     cfg.Company.TIN,
	}, a.Logger)

	payrollOpts := payroll.Options{
		Schema:       schema,
		MergePolicy:  policy,
		PortalLabel:  cfg.Portal,
		Profiles:     companyService,
		PayslipTopic: cfg.Kafka.PayslipTopic,
	}
	if cfg.Kafka.Enabled() {
		payrollOpts.Outbox = outboxRepo
	}

	employeeService := employee.NewService(a.DB, employeeRepo, a.Redis, a.Logger)
	payrollService := payroll.NewService(a.DB, payrollRepo, payrollOpts, a.Logger)

	return &Services{
		RBAC: rbac.NewService(enforcer, a.Logger),
		Auth: auth.NewService(a.DB, authRepo, auth.Options{
			Secret:   cfg.Auth.JWTSecret,
			TokenTTL: cfg.Auth.TokenTTL,
		}, a.Logger),
		Employee: employeeService,
		Company:  companyService,
		Payroll:  payrollService,
		Bulk:     bulk.NewService(employeeService, payrollService, a.Logger),
	}, nil
}

// EnsureAdmin seeds the admin login from config.
func (a *App) EnsureAdmin(ctx context.Context, svc *Services) error {
	created, err := svc.Auth.EnsureAdmin(ctx, a.Config.Auth.AdminUsername, a.Config.Auth.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		a.Logger.Info("admin login created", zap.String("username", a.Config.Auth.AdminUsername))
	}
	return nil
}

func (a *App) registerModules(router *gin.Engine, svc *Services) {
	rdb := a.Redis
	cfg := a.Config

	// --- Handlers ---
	authHandler := auth.NewHandler(svc.Auth, cfg.IsProduction())
	employeeHandler := employee.NewHandler(svc.Employee, a.Logger)
	companyHandler := company.NewHandler(svc.Company, a.Logger)
	payrollHandler := payroll.NewHandler(svc.Payroll)
	bulkHandler := bulk.NewHandler(svc.Bulk)
	rbacHandler := rbac.NewHandler(svc.RBAC)

	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := a.Healthy(ctx)
		for _, v := range status {
			if v != "ok" {
				response.Error(c, http.StatusServiceUnavailable, "UNHEALTHY", "dependency unavailable", status)
				return
			}
		}
		response.Success(c, http.StatusOK, status, nil)
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, auth.RouteDeps{
			Tokens:     svc.Auth,
			RBAC:       svc.RBAC,
			LoginRate:  rate.Limit(cfg.Limiters.LoginPerSecond),
			LoginBurst: cfg.Limiters.LoginBurst,
		})
		employee.RegisterRoutes(api, employeeHandler, svc.Auth, svc.RBAC, a.Logger)
		company.RegisterRoutes(api, companyHandler, svc.Auth, svc.RBAC)
		payroll.RegisterRoutes(api, payrollHandler, svc.Auth, svc.RBAC, rdb)
		bulk.RegisterRoutes(api, bulkHandler, svc.Auth, svc.RBAC, rdb)
		rbac.RegisterRoutes(api, rbacHandler, svc.Auth)
	}
}

// BuildApp opens the infrastructure, seeds the admin and mounts every route on
// router. The caller closes the returned App.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a, err := Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	svc, err := a.Services()
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := a.EnsureAdmin(ctx, svc); err != nil {
		a.Close()
		return nil, err
	}

	router.Use(
		middleware.ContextLogger(a.Logger),
		metrics.Middleware(),
	)
	a.registerModules(router, svc)
	return a, nil
}
