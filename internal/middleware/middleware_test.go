package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type fakeTokens struct {
	parseFn func(token string) (domain.Principal, error)
}

func (f fakeTokens) ParseToken(token string) (domain.Principal, error) {
	return f.parseFn(token)
}

type fakeEnforcer struct {
	enforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func validTokens() fakeTokens {
	return fakeTokens{parseFn: func(token string) (domain.Principal, error) {
		switch token {
		case "admin-token":
			return domain.Principal{Username: "admin", Role: domain.RoleAdmin}, nil
		case "emp-token":
			return domain.Principal{Username: "EMP001", Role: domain.RoleEmployee, EmployeeID: "EMP001"}, nil
		case "expired":
			return domain.Principal{}, autherrors.ErrTokenExpired
		}
		return domain.Principal{}, errors.New("garbage")
	}}
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(ContextLogger(zap.NewNop()), AuthMiddleware(validTokens()))
	r.GET("/me", func(c *gin.Context) {
		p := PrincipalFrom(c)
		ctxP, ok := contextutil.GetPrincipal(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, p, ctxP)
		assert.NotEmpty(t, contextutil.GetRequestID(c.Request.Context()))
		c.JSON(http.StatusOK, gin.H{"username": p.Username, "role": p.Role})
	})

	tests := []struct {
		name   string
		header string
		cookie string
		status int
		code   string
	}{
		{"missing token", "", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bearer", "Bearer admin-token", "", http.StatusOK, ""},
		{"cookie", "", "emp-token", http.StatusOK, ""},
		{"expired", "Bearer expired", "", http.StatusUnauthorized, autherrors.ErrTokenExpired.Code},
		{"unknown error becomes invalid token", "Bearer nope", "", http.StatusUnauthorized, autherrors.ErrInvalidToken.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tt.code != "" {
				var body struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.code, body.Error.Code)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(validTokens()), RoleMiddleware(domain.RoleAdmin))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for token, want := range map[string]int{"admin-token": http.StatusNoContent, "emp-token": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
}

func TestRBACAuthorize(t *testing.T) {
	var got domain.EnforceRequest
	enforcer := fakeEnforcer{enforceFn: func(req domain.EnforceRequest) (bool, error) {
		got = req
		return req.Role == domain.RoleAdmin, nil
	}}

	r := gin.New()
	r.Use(AuthMiddleware(validTokens()))
	r.DELETE("/payrolls/:id", RBACAuthorize(enforcer, "payroll", "delete"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/payrolls/1", nil)
	req.Header.Set("Authorization", "Bearer emp-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, domain.EnforceRequest{Role: domain.RoleEmployee, Resource: "payroll", Action: "delete"}, got)

	req = httptest.NewRequest(http.MethodDelete, "/payrolls/1", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRBACAuthorize_NoPrincipal(t *testing.T) {
	r := gin.New()
	r.GET("/x", RBACAuthorize(fakeEnforcer{enforceFn: func(domain.EnforceRequest) (bool, error) {
		t.Fatal("enforcer must not be called")
		return false, nil
	}}, "payroll", "read"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimitByIP(rate.Every(time.Hour), 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func idempotentRouter(rdb func() gin.HandlerFunc, calls *int) *gin.Engine {
	r := gin.New()
	r.POST("/bulk", rdb(), func(c *gin.Context) {
		*calls++
		c.Data(http.StatusCreated, "application/json", []byte(`{"ok":true}`))
	})
	return r
}

func TestIdempotency_FirstRequestIsCached(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0
	r := idempotentRouter(func() gin.HandlerFunc { return Idempotency(db) }, &calls)

	payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})
	mock.ExpectGet("idemp:/bulk::k1").RedisNil()
	mock.ExpectSetNX("idemp:/bulk::k1:lock", "locked", idempotencyLockTTL).SetVal(true)
	mock.ExpectSet("idemp:/bulk::k1", payload, idempotencyCacheTTL).SetVal("OK")
	mock.ExpectDel("idemp:/bulk::k1:lock").SetVal(1)

	req := httptest.NewRequest(http.MethodPost, "/bulk", nil)
	req.Header.Set("Idempotency-Key", "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0
	r := idempotentRouter(func() gin.HandlerFunc { return Idempotency(db) }, &calls)

	mock.ExpectGet("idemp:/bulk::k1").SetVal(`{"status":201,"body":{"ok":true}}`)

	req := httptest.NewRequest(http.MethodPost, "/bulk", nil)
	req.Header.Set("Idempotency-Key", "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
	assert.Equal(t, 0, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightDuplicateRejected(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0
	r := idempotentRouter(func() gin.HandlerFunc { return Idempotency(db) }, &calls)

	mock.ExpectGet("idemp:/bulk::k1").RedisNil()
	mock.ExpectSetNX("idemp:/bulk::k1:lock", "locked", idempotencyLockTTL).SetVal(false)

	req := httptest.NewRequest(http.MethodPost, "/bulk", nil)
	req.Header.Set("Idempotency-Key", "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0
	r := idempotentRouter(func() gin.HandlerFunc { return Idempotency(db) }, &calls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bulk", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
