package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/auth"
	autherrors "go-payroll/internal/auth/errors"
	authMock "go-payroll/internal/auth/mock"
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *authMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	mockService := authMock.NewMockService(ctrl)
	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	router := gin.New()
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, auth.NewHandler(mockService, false), auth.RouteDeps{
		Tokens:     mockService,
		RBAC:       rbac.NewService(enforcer),
		LoginRate:  100,
		LoginBurst: 100,
	})
	return router, mockService
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var res map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHandler_Login(t *testing.T) {
	t.Run("success sets the access token cookie", func(t *testing.T) {
		router, mockService := setupAuthRouter(t)
		req := auth.LoginRequest{Username: "EMP001", Password: "password123", Role: "employee"}

		mockService.EXPECT().
			Login(gomock.Any(), req).
			Return(auth.LoginResponse{
				AccessToken: "access-token",
				ExpiresAt:   time.Now().Add(time.Hour),
				User:        auth.UserResponse{Username: "EMP001", Role: "employee", EmployeeID: "EMP001"},
			}, nil)

		body, _ := json.Marshal(req)
		r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "access-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		res := decode(t, w)
		data := res["data"].(map[string]any)
		assert.Equal(t, "EMP001", data["user"].(map[string]any)["emp_id"])
	})

	t.Run("unknown role is rejected before the service", func(t *testing.T) {
		router, _ := setupAuthRouter(t)

		body := []byte(`{"username":"x","password":"y","role":"root"}`)
		r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		router, mockService := setupAuthRouter(t)
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			Return(auth.LoginResponse{}, autherrors.ErrInvalidCredentials)

		body := []byte(`{"username":"admin","password":"nope","role":"admin"}`)
		r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		res := decode(t, w)
		assert.Equal(t, false, res["ok"])
		assert.Len(t, w.Result().Cookies(), 0)
	})
}

func TestHandler_Me(t *testing.T) {
	router, mockService := setupAuthRouter(t)
	p := domain.Principal{Username: "EMP001", Role: domain.RoleEmployee, EmployeeID: "EMP001"}

	mockService.EXPECT().ParseToken("tok").Return(p, nil)
	mockService.EXPECT().Me(gomock.Any(), p).Return(auth.UserResponse{Username: "EMP001", Role: "employee", EmployeeID: "EMP001"}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	r.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EMP001", decode(t, w)["data"].(map[string]any)["username"])
}

func TestHandler_Logout(t *testing.T) {
	router, mockService := setupAuthRouter(t)
	mockService.EXPECT().ParseToken("tok").Return(domain.Principal{Username: "admin", Role: domain.RoleAdmin}, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: "access_token", Value: "tok"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestHandler_SetEmployeePassword(t *testing.T) {
	adminP := domain.Principal{Username: "admin", Role: domain.RoleAdmin}

	t.Run("admin sets password", func(t *testing.T) {
		router, mockService := setupAuthRouter(t)
		mockService.EXPECT().ParseToken("admin-token").Return(adminP, nil)
		mockService.EXPECT().SetEmployeePassword(gomock.Any(), adminP, "EMP001", "password123").Return(nil)

		r := httptest.NewRequest(http.MethodPut, "/api/v1/employees/EMP001/password", bytes.NewBufferString(`{"password":"password123"}`))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer admin-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("employee is blocked by rbac", func(t *testing.T) {
		router, mockService := setupAuthRouter(t)
		mockService.EXPECT().ParseToken("emp-token").Return(domain.Principal{Username: "EMP001", Role: domain.RoleEmployee, EmployeeID: "EMP001"}, nil)

		r := httptest.NewRequest(http.MethodPut, "/api/v1/employees/EMP001/password", bytes.NewBufferString(`{"password":"password123"}`))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer emp-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_DeleteUser(t *testing.T) {
	router, mockService := setupAuthRouter(t)
	adminP := domain.Principal{Username: "admin", Role: domain.RoleAdmin}
	mockService.EXPECT().ParseToken("admin-token").Return(adminP, nil)
	mockService.EXPECT().DeleteUser(gomock.Any(), adminP, "admin").Return(autherrors.ErrLastAdmin)

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/users/admin", nil)
	r.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	errObj := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "INVALID_STATE", errObj["code"])
}

var _ middleware.TokenParser = (*authMock.MockService)(nil)
