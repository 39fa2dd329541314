package payroll

import (
	"net/http"
	"strconv"

	"go-payroll/internal/middleware"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const pdfContentType = "application/pdf"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.FromError(c, payrollerrors.ErrInvalidPayrollID)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter ListPayrollsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), middleware.PrincipalFrom(c), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Lookup(c *gin.Context) {
	var req PayrollKeyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetByKey(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetSummary(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	slip, err := h.service.RenderPayslip(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Attachment(c, slip.Filename, pdfContentType, slip.Content)
}

func (h *Handler) DownloadArchivedPayslip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	archive, err := h.service.GetArchivedPayslip(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Attachment(c, archive.Filename, pdfContentType, archive.Content)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil, nil)
}

func (h *Handler) DeleteByKey(c *gin.Context) {
	var req PayrollKeyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.DeleteByKey(c.Request.Context(), middleware.PrincipalFrom(c), req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil, nil)
}

func (h *Handler) MergeDuplicates(c *gin.Context) {
	resp, err := h.service.MergeDuplicates(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReleasePayslips(c *gin.Context) {
	var req ReleasePayslipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ReleasePayslips(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}
