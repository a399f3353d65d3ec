package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader  = "X-Request-ID"
	ContextRequestID = "requestID"

	slowRequestThreshold = 500 * time.Millisecond
)

// GinMiddleware logs one line per request and tags it with a request id.
func GinMiddleware(l *slog.Logger) gin.HandlerFunc {
	l = Component(l, "http")

	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(ContextRequestID, reqID)
		c.Writer.Header().Set(RequestIDHeader, reqID)

		c.Next()

		latency := time.Since(start)
		attrs := []any{
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			l.Error("request failed", attrs...)
		case latency > slowRequestThreshold:
			l.Warn("slow request", attrs...)
		default:
			l.Info("request", attrs...)
		}
	}
}
