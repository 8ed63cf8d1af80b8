package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ddms-api/pkg/ddms"
	"go.uber.org/zap"
)

const KeyRequestID = "request_id"

// LoggerMiddleware logs one structured line per request and makes sure
// every response carries an X-Request-ID.
func LoggerMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(ddms.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(KeyRequestID, requestID)
		c.Header(ddms.HeaderRequestID, requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if storeID := GetStoreID(c); storeID != uuid.Nil {
			fields = append(fields, "store_id", storeID)
		}

		switch status := c.Writer.Status(); {
		case len(c.Errors) > 0:
			logger.Errorw("request failed", append(fields, "errors", c.Errors.String())...)
		case status >= 500:
			logger.Errorw("request", fields...)
		case status >= 400:
			logger.Warnw("request", fields...)
		default:
			logger.Infow("request", fields...)
		}
	}
}

// Recovery turns panics into a 500 DDMS envelope and logs the stack.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorw("panic recovered",
			"request_id", c.GetString(KeyRequestID),
			"panic", recovered,
			zap.Stack("stack"),
		)
		response.InternalServerError(c, "Internal server error")
		c.Abort()
	})
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
