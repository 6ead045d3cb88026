package middlewares

import (
	"context"
	"time"

	"github.com/crovdigital/gerente_backend/appctx"
	"github.com/crovdigital/gerente_backend/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const correlationHeader = "X-Correlation-Id"

// CorrelationMiddleware tags every request with a correlation id (reusing the
// caller's header when present) and logs the request outcome.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.Request.Header.Get(correlationHeader)
		if correlationId == "" {
			correlationId = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), appctx.ContextKeyCorrelationId, correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(correlationHeader, correlationId)

		start := time.Now()
		c.Next()

		config.GetLogger().WithFields(logrus.Fields{
			"correlationId": correlationId,
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        c.Writer.Status(),
			"durationMs":    time.Since(start).Milliseconds(),
		}).Info("request completed")
	}
}

func CorrelationId(ctx context.Context) string {
	id, _ := appctx.GetString(ctx, appctx.ContextKeyCorrelationId)
	return id
}
