package rbac

import (
	"net/http"
	"strings"

	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type checkRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type permissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Enforce answers whether the caller's role may perform an action.
func (h *Handler) Enforce(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	principal := middleware.PrincipalFrom(c)
	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Role:     principal.Role,
		Resource: strings.TrimSpace(req.Resource),
		Action:   strings.TrimSpace(req.Action),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	rules, err := h.service.Permissions(principal.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]permissionResponse, 0, len(rules))
	for _, r := range rules {
		if len(r) < 3 {
			continue
		}
		out = append(out, permissionResponse{Resource: r[1], Action: r[2]})
	}
	response.Success(c, http.StatusOK, out, nil)
}
