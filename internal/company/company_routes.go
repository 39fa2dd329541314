package company

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tokens middleware.TokenParser, rbacService middleware.RBACService) {
	company := r.Group("/company")
	company.Use(middleware.AuthMiddleware(tokens))
	{
		// Dipanggil setiap kali halaman payslip dibuka
		// Rate: 2 req/detik, Burst: 10
		company.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionRead),
			handler.GetMe,
		)

		// Jarang dilakukan
		// Rate: 0.2 req/detik (1x per 5 detik), Burst: 2
		company.PUT("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionWrite),
			handler.UpdateMe,
		)
	}
}
