package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelancehub-backend/internal/logger"
	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

type panicBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Stack   string `json:"stack,omitempty"`
}

// Recovery превращает панику в ответ 500. Стек отдаётся клиенту только в development.
func Recovery(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			stack := string(debug.Stack())
			logger.Log.WithFields(logrus.Fields{
				"panic":  fmt.Sprint(rec),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"stack":  stack,
			}).Error("panic recovered")

			body := panicBody{Message: "server error", Code: string(apperror.ErrCodeInternal)}
			if development {
				body.Stack = stack
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()
		c.Next()
	}
}

// NotFound отвечает на неизвестные маршруты.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Not found - " + c.Request.URL.Path,
			"code":    string(apperror.ErrCodeNotFound),
		})
	}
}
