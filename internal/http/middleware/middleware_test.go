package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/domain/valueobject"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAccessControl struct {
	mock.Mock
}

func (m *mockAccessControl) Authenticate(ctx context.Context, token string) (entity.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(entity.Identity), args.Error(1)
}

func (m *mockAccessControl) Authorize(identity entity.Identity, roles ...valueobject.Role) error {
	if len(roles) == 0 || identity.HasRole(roles...) {
		return nil
	}
	return apperror.New(apperror.ErrCodeForbidden, "user role "+string(identity.Role)+" is not authorized to access this route")
}

func do(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth(t *testing.T) {
	client := entity.Identity{ID: uuid.New(), Role: valueobject.RoleClient, Email: "c@example.com", Name: "Client"}
	ac := new(mockAccessControl)
	ac.On("Authenticate", mock.Anything, "good").Return(client, nil)
	ac.On("Authenticate", mock.Anything, "banned").Return(entity.Identity{}, apperror.ErrInvalidUser)
	ac.On("Authenticate", mock.Anything, "garbage").Return(entity.Identity{}, apperror.ErrInvalidToken)

	r := gin.New()
	r.GET("/me", RequireAuth(ac), func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID.String()})
	})

	t.Run("missing header", func(t *testing.T) {
		w := do(r, http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "authorization token is required", decode(t, w)["message"])
	})

	t.Run("valid token", func(t *testing.T) {
		w := do(r, http.MethodGet, "/me", "good")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, client.ID.String(), decode(t, w)["id"])
	})

	t.Run("banned user", func(t *testing.T) {
		w := do(r, http.MethodGet, "/me", "banned")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid user", decode(t, w)["message"])
	})

	t.Run("invalid token", func(t *testing.T) {
		w := do(r, http.MethodGet, "/me", "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	freelancer := entity.Identity{ID: uuid.New(), Role: valueobject.RoleFreelancer}
	ac := new(mockAccessControl)
	ac.On("Authenticate", mock.Anything, "good").Return(freelancer, nil)
	ac.On("Authenticate", mock.Anything, "expired").Return(entity.Identity{}, apperror.ErrInvalidToken)

	r := gin.New()
	r.GET("/jobs", OptionalAuth(ac), func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "role": string(identity.Role)})
	})

	body := decode(t, do(r, http.MethodGet, "/jobs", ""))
	assert.Equal(t, false, body["authenticated"])

	body = decode(t, do(r, http.MethodGet, "/jobs", "good"))
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "freelancer", body["role"])

	w := do(r, http.MethodGet, "/jobs", "expired")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["authenticated"])
}

func TestRequireRoles(t *testing.T) {
	ac := new(mockAccessControl)
	ac.On("Authenticate", mock.Anything, "client").Return(entity.Identity{ID: uuid.New(), Role: valueobject.RoleClient}, nil)
	ac.On("Authenticate", mock.Anything, "admin").Return(entity.Identity{ID: uuid.New(), Role: valueobject.RoleAdmin}, nil)

	r := gin.New()
	r.GET("/admin/users", RequireAuth(ac), RequireRoles(ac, valueobject.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/unguarded", RequireRoles(ac, valueobject.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, "/admin/users", "admin").Code)

	w := do(r, http.MethodGet, "/admin/users", "client")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "user role client is not authorized to access this route", decode(t, w)["message"])

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/unguarded", "").Code)
}

func TestRecovery(t *testing.T) {
	for _, dev := range []bool{true, false} {
		r := gin.New()
		r.Use(Recovery(dev))
		r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

		w := do(r, http.MethodGet, "/boom", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "server error", body["message"])
		_, hasStack := body["stack"]
		assert.Equal(t, dev, hasStack)
	}
}

func TestNotFound(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFound())

	w := do(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found - /api/nope", decode(t, w)["message"])
}

func TestUUIDParams(t *testing.T) {
	r := gin.New()
	r.GET("/jobs/:id", UUIDParams("id"), func(c *gin.Context) {
		id, err := ParamUUID(c, "id")
		require.NoError(t, err)
		c.String(http.StatusOK, id.String())
	})

	id := uuid.New()
	w := do(r, http.MethodGet, "/jobs/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Body.String())

	w = do(r, http.MethodGet, "/jobs/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, map[string]interface{}{"id": "uuid"}, body["details"])
}

func TestMetricsAndLogger(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(), RequestLogger())
	r.GET("/api/jobs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/jobs/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/missing", "").Code)
}
