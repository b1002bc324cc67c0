package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelancehub-backend/internal/config"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/infrastructure/cache"
	"github.com/ignatzorin/freelancehub-backend/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	app   *App
	store *testutil.Store
	redis *miniredis.Miniredis
	mock  sqlmock.Sqlmock
}

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		JWTSecret:       "app-test-secret-app-test-secret-0123",
		TokenTTL:        time.Hour,
		AllowedOrigins:  []string{"http://localhost:3000"},
		PaymentCurrency: "INR",
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := testutil.NewStore()
	a := New(testConfig(), Repositories{
		Users:    store.Users(),
		Profiles: store.Profiles(),
		Jobs:     store.Jobs(),
		Payments: store.Payments(),
	}, cache.NewRedisIdentityCache(client, time.Minute), sqlx.NewDb(sqlDB, "sqlmock"))

	return &harness{app: a, store: store, redis: mr, mock: mock}
}

func (h *harness) call(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.app.Router.ServeHTTP(w, req)
	return w
}

func field(t *testing.T, w *httptest.ResponseRecorder, keys ...string) interface{} {
	t.Helper()
	var body interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	for _, k := range keys {
		m, ok := body.(map[string]interface{})
		require.True(t, ok, "expected object at %q in %s", k, w.Body.String())
		body = m[k]
	}
	return body
}

func (h *harness) register(t *testing.T, name, email, role string) (token, id string) {
	t.Helper()
	w := h.call(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "password123", "role": role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return field(t, w, "token").(string), field(t, w, "user", "id").(string)
}

func (h *harness) admin(t *testing.T) string {
	t.Helper()
	user, err := entity.NewUser("Admin", "admin@example.com", "x", valueobject.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, h.store.Users().Create(context.Background(), user))
	token, _, err := h.app.Tokens.Generate(user)
	require.NoError(t, err)
	return token
}

func TestMarketplaceFlow(t *testing.T) {
	h := newHarness(t)
	admin := h.admin(t)
	clientToken, _ := h.register(t, "Carl", "carl@example.com", "client")
	dancerToken, dancerID := h.register(t, "Dana", "dana@example.com", "freelancer")

	w := h.call(t, http.MethodPost, "/api/freelancers", dancerToken, gin.H{"category": "dancer", "skills": []string{"salsa"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profileID := field(t, w, "id").(string)

	w = h.call(t, http.MethodPatch, "/api/admin/freelancers/"+profileID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.call(t, http.MethodPost, "/api/jobs", dancerToken, gin.H{"title": "Not allowed"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "user role freelancer is not authorized to access this route", field(t, w, "message"))

	w = h.call(t, http.MethodPost, "/api/jobs", clientToken, gin.H{"title": "Sangeet dancer", "price": 2500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	jobID := field(t, w, "id").(string)

	w = h.call(t, http.MethodPost, "/api/jobs/"+jobID+"/apply", clientToken, gin.H{"message": "me?"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = h.call(t, http.MethodPost, "/api/jobs/"+jobID+"/apply", dancerToken, gin.H{"message": "Happy to"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	proposalID := field(t, w, "proposal", "id").(string)

	w = h.call(t, http.MethodPatch, "/api/jobs/"+jobID+"/proposals/"+proposalID, clientToken, gin.H{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", field(t, w, "job", "status"))

	w = h.call(t, http.MethodGet, "/api/jobs", dancerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assigned := field(t, w).([]interface{})
	require.Len(t, assigned, 1)

	w = h.call(t, http.MethodPost, "/api/payments/"+jobID, clientToken, gin.H{"receiptEmail": "billing@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 2500.0, field(t, w, "payment", "amount"))

	w = h.call(t, http.MethodGet, "/api/payments/job/"+jobID, dancerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "billing@example.com", field(t, w, "receiptEmail"))

	w = h.call(t, http.MethodPatch, "/api/jobs/"+jobID+"/status", clientToken, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.call(t, http.MethodGet, "/api/jobs/"+jobID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", field(t, w, "status"))
	assert.Equal(t, "Dana", field(t, w, "freelancer", "displayName"))
	assert.Nil(t, field(t, w, "payment"))

	w = h.call(t, http.MethodGet, "/api/jobs/"+jobID, clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "billing@example.com", field(t, w, "payment", "receiptEmail"))

	// identity закэширована после первого запроса с токеном
	assert.True(t, h.redis.Exists("identity:"+dancerID))

	w = h.call(t, http.MethodPatch, "/api/admin/users/"+dancerID+"/ban", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, h.redis.Exists("identity:"+dancerID))

	w = h.call(t, http.MethodGet, "/api/auth/me", dancerToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid user", field(t, w, "message"))

	w = h.call(t, http.MethodGet, "/api/admin/users", clientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouting(t *testing.T) {
	h := newHarness(t)

	t.Run("unknown route", func(t *testing.T) {
		w := h.call(t, http.MethodGet, "/api/nope", "", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found - /api/nope", field(t, w, "message"))
	})

	t.Run("invalid uuid", func(t *testing.T) {
		w := h.call(t, http.MethodGet, "/api/jobs/123", "", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", field(t, w, "code"))
	})

	t.Run("missing token", func(t *testing.T) {
		w := h.call(t, http.MethodGet, "/api/jobs/applications", "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "authorization token is required", field(t, w, "message"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		h.app.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("metrics", func(t *testing.T) {
		h.call(t, http.MethodGet, "/api/jobs", "", nil)
		w := h.call(t, http.MethodGet, "/metrics", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `freelancehub_http_requests_total{method="GET",route="/api/jobs",status="200"}`)
	})
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	h.mock.ExpectPing()
	w := h.call(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "healthy", field(t, w, "status"))

	h.mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w = h.call(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", field(t, w, "status"))

	assert.NoError(t, h.mock.ExpectationsWereMet())
}
