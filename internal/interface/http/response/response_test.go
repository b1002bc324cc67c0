package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(t *testing.T, body string, handler gin.HandlerFunc) (int, ErrorBody) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)

	var out ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestError_AppError(t *testing.T) {
	code, body := run(t, "", func(c *gin.Context) {
		Error(c, apperror.ErrAlreadyApplied)
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "you have already applied to this job", body.Message)
	assert.Equal(t, "CONFLICT", body.Code)
	assert.Empty(t, body.Details)
}

func TestError_HidesInternalCause(t *testing.T) {
	code, body := run(t, "", func(c *gin.Context) {
		Error(c, apperror.Wrap(errors.New("pq: connection refused"), apperror.ErrCodeDatabaseError, "ошибка БД"))
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "server error", body.Message)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)

	code, body = run(t, "", func(c *gin.Context) {
		Error(c, errors.New("boom"))
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, body.Message, "boom")
}

type bindTarget struct {
	Email string   `json:"email" binding:"required,email"`
	Price *float64 `json:"price" binding:"omitempty,min=0"`
	Media []struct {
		Type string `json:"type" binding:"required,oneof=image video"`
	} `json:"media" binding:"omitempty,dive"`
}

func bind(c *gin.Context) {
	var req bindTarget
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	c.JSON(http.StatusOK, ErrorBody{})
}

func TestBindError(t *testing.T) {
	t.Run("validation details per field", func(t *testing.T) {
		code, body := run(t, `{"email":"nope","price":-1,"media":[{"type":"gif"}]}`, bind)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		assert.Equal(t, "email", body.Details["email"])
		assert.Equal(t, "min=0", body.Details["price"])
		assert.Equal(t, "oneof=image video", body.Details["media[0].type"])
	})

	t.Run("malformed json", func(t *testing.T) {
		code, body := run(t, `{"email":`, bind)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "BAD_REQUEST", body.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		code, body := run(t, ``, bind)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "malformed JSON body", body.Message)
	})

	t.Run("wrong type", func(t *testing.T) {
		code, body := run(t, `{"email":"a@b.co","price":"free"}`, bind)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "type=float64", body.Details["price"])
	})
}
