package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go-payroll/internal/app"
	"go-payroll/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error map[string]any  `json:"error"`
}

type client struct {
	t      *testing.T
	router *gin.Engine
}

func (c client) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		assert.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (c client) login(username, password, role string) string {
	c.t.Helper()
	w, env := c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
		"role":     role,
	})
	assert.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		AccessToken string `json:"access_token"`
	}
	assert.NoError(c.t, json.Unmarshal(env.Data, &res))
	return res.AccessToken
}

func setupApp(t *testing.T) client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cfg, err := config.FromLookuper(ctx, envconfig.MapLookuper(map[string]string{
		"DB_DRIVER":        "sqlite",
		"DB_PATH":          filepath.Join(t.TempDir(), "payroll.db"),
		"DB_MAX_RETRIES":   "1",
		"ADMIN_PASSWORD":   "s3cret!",
		"COMPANY_NAME":     "Acme Payroll Inc.",
		"LOGIN_RATE_BURST": "100",
	}))
	assert.NoError(t, err)

	router := gin.New()
	a, err := app.BuildApp(ctx, router, cfg, zap.NewNop())
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	t.Cleanup(a.Close)

	return client{t: t, router: router}
}

func TestApp_PayrollFlow(t *testing.T) {
	c := setupApp(t)

	w, _ := c.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	admin := c.login("admin", "s3cret!", "admin")
	assert.NotEmpty(t, admin)

	w, _ = c.do(http.MethodPost, "/api/v1/employees", admin, map[string]any{
		"emp_id":     "EMP001",
		"full_name":  "Juan Dela Cruz",
		"position":   "Staff",
		"department": "Marketing Department",
		"rate_type":  "monthly",
		"base_rate":  "15000",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, amount := range []string{"7500", "2500"} {
		w, _ = c.do(http.MethodPost, "/api/v1/payrolls", admin, map[string]any{
			"emp_id":       "EMP001",
			"period_start": "2025-08-01",
			"period_end":   "2025-08-15",
			"basic_pay":    amount,
			"sss":          "600",
			"notes":        "first",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w, env := c.do(http.MethodGet, "/api/v1/payrolls", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var rows []struct {
		ID       uint   `json:"id"`
		BasicPay string `json:"basic_pay"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	if !assert.Len(t, rows, 1) {
		return
	}
	assert.Equal(t, "2500", rows[0].BasicPay)
	id := rows[0].ID

	w, env = c.do(http.MethodGet, fmt.Sprintf("/api/v1/payrolls/%d/summary", id), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Gross string `json:"gross"`
		Net   string `json:"net"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "2500", summary.Gross)
	assert.Equal(t, "1900", summary.Net)

	w, _ = c.do(http.MethodGet, fmt.Sprintf("/api/v1/payrolls/%d/payslip", id), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-1.4")))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip_EMP001_2025-08-01_2025-08-15.pdf")

	w, _ = c.do(http.MethodPut, "/api/v1/employees/EMP001/password", admin, map[string]string{"password": "password123"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	emp := c.login("EMP001", "password123", "employee")

	w, env = c.do(http.MethodGet, "/api/v1/payrolls", emp, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)

	w, _ = c.do(http.MethodGet, "/api/v1/employees", emp, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = c.do(http.MethodPost, "/api/v1/payrolls/payslips/release", admin, map[string]string{
		"period_start": "2025-08-01",
		"period_end":   "2025-08-15",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, env = c.do(http.MethodGet, "/api/v1/company", emp, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var profile map[string]any
	assert.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Acme Payroll Inc.", profile["name"])
}

func TestApp_WrongAdminPassword(t *testing.T) {
	c := setupApp(t)

	w, env := c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Ok)
}
