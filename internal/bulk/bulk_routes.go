package bulk

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	tokens middleware.TokenParser,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	bulk := r.Group("/bulk")
	bulk.Use(middleware.AuthMiddleware(tokens))
	{
		// Upload diproteksi Idempotency-Key supaya double submit tidak mengimpor dua kali
		bulk.POST("/employees",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceBulk, rbac.ActionWrite),
			middleware.Idempotency(rdb),
			handler.ImportEmployees,
		)
		bulk.POST("/payrolls",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceBulk, rbac.ActionWrite),
			middleware.Idempotency(rdb),
			handler.ImportPayrolls,
		)

		bulk.GET("/templates/:name",
			middleware.RBACAuthorize(rbacService, rbac.ResourceBulk, rbac.ActionRead),
			handler.Template,
		)
		bulk.GET("/export/:name",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceBulk, rbac.ActionRead),
			handler.Export,
		)
	}
}
