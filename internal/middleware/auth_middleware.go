package middleware

import (
	"net/http"
	"strings"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

// TokenParser resolves a bearer token into the caller.
type TokenParser interface {
	ParseToken(token string) (domain.Principal, error)
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		principal, err := tokens.ParseToken(tokenString)
		if err != nil {
			errObj := apperror.ToHTTP(err)
			if errObj.Status == http.StatusInternalServerError {
				errObj = apperror.ToHTTP(autherrors.ErrInvalidToken)
			}
			response.Error(c, errObj.Status, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Set("username", principal.Username)
		c.Set("role", principal.Role)

		ctx := contextutil.WithPrincipal(c.Request.Context(), principal)
		logger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("username", principal.Username),
			zap.String("role", principal.Role),
		)
		ctx = contextutil.WithLogger(ctx, logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// PrincipalFrom returns the caller set by AuthMiddleware, or the zero value.
func PrincipalFrom(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)

		for _, role := range allowedRoles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
		c.Abort()
	}
}
