package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/interface/http/response"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

const paramKeyPrefix = "param:"

// UUIDParams проверяет, что параметры пути - валидные UUID, и кладёт
// разобранные значения в контекст.
// Использование: router.GET("/jobs/:id", UUIDParams("id"), handler.Get)
func UUIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			id, err := uuid.Parse(c.Param(name))
			if err != nil {
				response.Error(c, apperror.Validation("invalid "+name, map[string]string{name: "uuid"}))
				return
			}
			c.Set(paramKeyPrefix+name, id)
		}
		c.Next()
	}
}

// ParamUUID возвращает параметр, разобранный UUIDParams, либо разбирает его сам.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, error) {
	if v, ok := c.Get(paramKeyPrefix + name); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id, nil
		}
	}
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid "+name, map[string]string{name: "uuid"})
	}
	return id, nil
}
