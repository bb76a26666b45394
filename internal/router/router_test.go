package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/auth"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/config"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/handler"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/metrics"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

const testSecret = "router-test-secret"

type fixture struct {
	e      *echo.Echo
	jwt    *auth.JWTService
	tokens *auth.TokenStore
	token  string
}

func newFixture(t *testing.T, rateLimit int) *fixture {
	t.Helper()
	store := kv.NewMemoryStore()
	products := repository.NewProductRepository(store, nil)
	users := repository.NewUserRepository(store, nil)
	jwtSvc := auth.NewJWTService(testSecret)
	tokens := auth.NewTokenStore(store, nil)
	m := metrics.New()

	e := echo.New()
	Register(e, &config.Config{JWTSecret: testSecret, RateLimit: rateLimit}, Deps{
		JWT:        jwtSvc,
		Tokens:     tokens,
		Metrics:    m,
		Products:   handler.NewProductHandler(service.NewProductService(products)),
		Users:      handler.NewUserHandler(service.NewUserService(users)),
		Inventory:  handler.NewInventoryHandler(service.NewInventoryService(products), m),
		Initialize: handler.NewInitializeHandler(service.NewInitializer(products, users, nil)),
		Auth:       handler.NewAuthHandler(tokens),
	})

	token, _, err := jwtSvc.IssueToken("tester", "admin", time.Hour)
	require.NoError(t, err)
	return &fixture{e: e, jwt: jwtSvc, tokens: tokens, token: token}
}

func (f *fixture) call(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handler.Envelope {
	t.Helper()
	var env handler.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestPublicRoutes(t *testing.T) {
	f := newFixture(t, 0)

	rec := f.call(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	f.call(http.MethodGet, "/api/inventory/stats", f.token, "")
	rec = f.call(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stock_http_requests_total")
	assert.Contains(t, rec.Body.String(), "stock_products_total 0")
}

func TestAPIRequiresBearerToken(t *testing.T) {
	f := newFixture(t, 0)

	expiredSvc := auth.NewJWTService(testSecret)
	expired, _, err := expiredSvc.IssueToken("tester", "", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	foreign, _, err := auth.NewJWTService("other").IssueToken("tester", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		token string
	}{
		{name: "missing", path: "/api/products"},
		{name: "garbage", path: "/api/users", token: "abc.def.ghi"},
		{name: "foreign signature", path: "/api/products", token: foreign},
		{name: "expired", path: "/api/inventory/stats", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.call(http.MethodGet, tt.path, tt.token, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, "UNAUTHORIZED", env.Code)
		})
	}
}

func TestRevokedTokenIsRejected(t *testing.T) {
	f := newFixture(t, 0)

	rec := f.call(http.MethodGet, "/api/auth/me", f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.call(http.MethodPost, "/api/auth/logout", f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.call(http.MethodGet, "/api/products", f.token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	fresh, claims, err := f.jwt.IssueToken("tester", "", time.Hour)
	require.NoError(t, err)
	rec = f.call(http.MethodGet, "/api/products", fresh, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, f.tokens.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))
	rec = f.call(http.MethodGet, "/api/products", fresh, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInitializeThenBrowse(t *testing.T) {
	f := newFixture(t, 0)

	rec := f.call(http.MethodPost, "/api/initialize", f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "data initialized successfully", env.Message)

	rec = f.call(http.MethodGet, "/api/products", f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []model.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 6)

	rec = f.call(http.MethodGet, "/api/users", f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "joao.silva@example.com")

	rec = f.call(http.MethodGet, "/api/inventory/stats", f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalValue":"247160"`)
	assert.Contains(t, rec.Body.String(), `"lowStockCount":3`)

	rec = f.call(http.MethodGet, "/api/inventory/chart", f.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"Notebook Dell I..."`)

	rec = f.call(http.MethodGet, "/metrics", "", "")
	assert.Contains(t, rec.Body.String(), "stock_products_total 6")
	assert.Contains(t, rec.Body.String(), "stock_low_stock_products 3")
}

func TestValidationMessagesUseJSONNames(t *testing.T) {
	f := newFixture(t, 0)

	rec := f.call(http.MethodPost, "/api/products", f.token, `{"quantity":-3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
	assert.Contains(t, env.Error, `name failed "required"`)
	assert.Contains(t, env.Error, `quantity failed "gte"`)
}

func TestRateLimit(t *testing.T) {
	f := newFixture(t, 2)

	for i := 0; i < 2; i++ {
		rec := f.call(http.MethodGet, "/api/products", f.token, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.call(http.MethodGet, "/api/products", f.token, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "RATE_LIMITED", env.Code)

	rec = f.call(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
