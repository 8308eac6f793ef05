package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	loggerKey       = "logger"
)

// requestID propagates the caller's X-Request-ID or assigns a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request and stores a request-scoped logger on the context.
func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.WithField(requestIDKey, c.GetString(requestIDKey))
		c.Set(loggerKey, reqLogger)

		c.Next()

		entry := reqLogger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

func recoverJSON(logger logrus.FieldLogger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		requestLog(c, logger).WithField("panic", recovered).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "an internal error occurred",
		}})
	}
}

// observe records request latency under the matched route template.
func observe(m *metrics.HTTP) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Observe(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func requestLog(c *gin.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return fallback
}
