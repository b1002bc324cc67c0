package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelancehub-backend/internal/metrics"
)

// Metrics собирает HTTP метрики по шаблону маршрута, а не по фактическому пути.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		done := metrics.RequestStarted()
		defer done()

		start := time.Now()
		c.Next()

		metrics.ObserveRequest(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
