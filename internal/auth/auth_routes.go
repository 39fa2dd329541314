package auth

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RouteDeps struct {
	Tokens     middleware.TokenParser
	RBAC       middleware.RBACService
	LoginRate  rate.Limit
	LoginBurst int
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, deps RouteDeps) {
	authMw := middleware.AuthMiddleware(deps.Tokens)

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(deps.LoginRate, deps.LoginBurst), handler.Login)
		auth.GET("/me", authMw, middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/logout", authMw, handler.Logout)
	}

	r.PUT("/employees/:id/password",
		authMw,
		middleware.RBACAuthorize(deps.RBAC, rbac.ResourceUser, rbac.ActionWrite),
		handler.SetEmployeePassword,
	)
	r.DELETE("/users/:username",
		authMw,
		middleware.RBACAuthorize(deps.RBAC, rbac.ResourceUser, rbac.ActionDelete),
		handler.DeleteUser,
	)
}
