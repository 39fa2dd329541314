package payroll

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
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware(tokens))
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead), handler.GetAll)
		payrolls.GET("/lookup", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead), handler.Lookup)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead), handler.GetByID)
		payrolls.GET("/:id/summary", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead), handler.GetSummary)
		payrolls.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionRead), handler.DownloadPayslip)
		payrolls.GET("/:id/payslip/archived", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionRead), handler.DownloadArchivedPayslip)

		payrolls.POST(
			"",
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionWrite),
			handler.Upsert,
		)
		payrolls.POST("/merge-duplicates", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionWrite), handler.MergeDuplicates)
		payrolls.POST(
			"/payslips/release",
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionWrite),
			handler.ReleasePayslips,
		)

		payrolls.DELETE("", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionDelete), handler.DeleteByKey)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionDelete), handler.Delete)
	}
}
