package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/http/middleware"
	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

// currentIdentity достаёт identity из контекста. Если её нет, сразу отвечает 401.
func currentIdentity(c *gin.Context) (entity.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return entity.Identity{}, false
	}
	return identity, true
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func parseBoolQuery(c *gin.Context, key string) *bool {
	valueStr := c.Query(key)
	if valueStr == "" {
		return nil
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return nil
	}

	return &value
}
