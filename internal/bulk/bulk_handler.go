package bulk

import (
	"context"
	"errors"
	"io"
	"net/http"

	bulkerrors "go-payroll/internal/bulk/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// MaxUploadBytes caps an import file.
const MaxUploadBytes = 10 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ImportEmployees(c *gin.Context) {
	h.upload(c, h.service.ImportEmployees)
}

func (h *Handler) ImportPayrolls(c *gin.Context) {
	h.upload(c, h.service.ImportPayrolls)
}

type importFunc func(ctx context.Context, p domain.Principal, filename string, r io.Reader) (ImportResponse, error)

func (h *Handler) upload(c *gin.Context, run importFunc) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(c, bulkerrors.ErrFileTooLarge)
			return
		}
		response.FromError(c, bulkerrors.ErrFileRequired)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.FromError(c, bulkerrors.ErrUnreadableFile.WithCause(err))
		return
	}
	defer f.Close()

	res, err := run(c.Request.Context(), middleware.PrincipalFrom(c), fh.Filename, f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Template(c *gin.Context) {
	file, err := h.service.Template(c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func (h *Handler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
