package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"detector-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		detectionID, _ := c.Get("detectionId")
		contentKind, _ := c.Get("contentKind")
		resultLabel := ""
		if raw, ok := c.Get("resultLabel"); ok {
			if s, ok := raw.(string); ok {
				resultLabel = s
			}
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":   reqID,
			"method":       c.Request.Method,
			"path":         c.Request.URL.Path,
			"status":       status,
			"duration_ms":  float64(latency.Microseconds()) / 1000.0,
			"detection_id": detectionID,
			"content_kind": contentKind,
			"result_label": resultLabel,
			"client_ip":    c.ClientIP(),
			"user_agent":   c.Request.UserAgent(),
		})
	}
}
