package bulk_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/bulk"
	bulkerrors "go-payroll/internal/bulk/errors"
	bulkMock "go-payroll/internal/bulk/mock"
	"go-payroll/internal/domain"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type stubTokens map[string]domain.Principal

func (s stubTokens) ParseToken(token string) (domain.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return domain.Principal{}, errors.New("unknown token")
}

func setupBulkRouter(t *testing.T) (*gin.Engine, *bulkMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	mockService := bulkMock.NewMockService(ctrl)
	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	router := gin.New()
	tokens := stubTokens{"admin-token": adminPrincipal, "emp-token": emp1Principal}
	bulk.RegisterRoutes(router.Group("/api/v1"), bulk.NewHandler(mockService), tokens, rbac.NewService(enforcer), nil)
	return router, mockService
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func upload(router *gin.Engine, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_ImportEmployees(t *testing.T) {
	t.Run("admin upload", func(t *testing.T) {
		router, mockService := setupBulkRouter(t)
		csv := []byte("emp_id,full_name\nEMP001,Juan\n")

		mockService.EXPECT().
			ImportEmployees(gomock.Any(), adminPrincipal, "employees.csv", gomock.Any()).
			Return(bulk.ImportResponse{Kind: "employees", Received: 1, Upserted: 1}, nil)

		body, ct := multipartBody(t, "file", "employees.csv", csv)
		w := upload(router, "/api/v1/bulk/employees", "admin-token", body, ct)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]any)
		assert.Equal(t, "employees", data["kind"])
		assert.Equal(t, float64(1), data["upserted"])
	})

	t.Run("missing file field", func(t *testing.T) {
		router, _ := setupBulkRouter(t)

		body, ct := multipartBody(t, "attachment", "employees.csv", []byte("x"))
		w := upload(router, "/api/v1/bulk/employees", "admin-token", body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("employees are forbidden", func(t *testing.T) {
		router, _ := setupBulkRouter(t)

		body, ct := multipartBody(t, "file", "employees.csv", []byte("emp_id,full_name\n"))
		w := upload(router, "/api/v1/bulk/employees", "emp-token", body, ct)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token", func(t *testing.T) {
		router, _ := setupBulkRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bulk/employees", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_ImportPayrolls(t *testing.T) {
	router, mockService := setupBulkRouter(t)

	mockService.EXPECT().
		ImportPayrolls(gomock.Any(), adminPrincipal, "payroll.xlsx", gomock.Any()).
		Return(bulk.ImportResponse{}, bulkerrors.ErrMissingColumns.WithDetails(map[string]any{"columns": []string{"period_end"}}))

	body, ct := multipartBody(t, "file", "payroll.xlsx", []byte("not really a workbook"))
	w := upload(router, "/api/v1/bulk/payrolls", "admin-token", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var res map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, false, res["ok"])
}

func TestHandler_Template(t *testing.T) {
	t.Run("download", func(t *testing.T) {
		router, mockService := setupBulkRouter(t)
		mockService.EXPECT().Template("employees.csv").Return(bulk.File{
			Filename:    "template_employees.csv",
			ContentType: "text/csv",
			Data:        []byte("emp_id,full_name\n"),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bulk/templates/employees.csv", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="template_employees.csv"`, w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Equal(t, "emp_id,full_name\n", w.Body.String())
	})

	t.Run("unknown template", func(t *testing.T) {
		router, mockService := setupBulkRouter(t)
		mockService.EXPECT().Template("x.csv").Return(bulk.File{}, bulkerrors.ErrUnknownTemplate)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bulk/templates/x.csv", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Export(t *testing.T) {
	router, mockService := setupBulkRouter(t)
	mockService.EXPECT().Export(gomock.Any(), adminPrincipal, "payroll.csv").Return(bulk.File{
		Filename:    "payroll_backup.csv",
		ContentType: "text/csv",
		Data:        []byte("id\n"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bulk/export/payroll.csv", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payroll_backup.csv")
}
