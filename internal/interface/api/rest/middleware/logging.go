package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-admin-api/internal/infrastructure/metrics"
	"user-admin-api/internal/interface/api/rest/response"
)

const (
	maxLogBodySize     = 1 << 12 // 4 KB
	maxRequestBodySize = 1 << 20 // 1 MiB
)

var passwordRe = regexp.MustCompile(`("password"\s*:\s*)"(?:[^"\\]|\\.)*"`)

// maskBody hides password values and truncates what is left for the log line.
func maskBody(body []byte) string {
	masked := passwordRe.ReplaceAll(body, []byte(`$1"***"`))
	if len(masked) > maxLogBodySize {
		return string(masked[:maxLogBodySize]) + "...<truncated>"
	}
	return string(masked)
}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodySize))
			_ = c.Request.Body.Close()
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Warn("request body too large",
					zap.String("method", c.Request.Method),
					zap.String("url", c.FullPath()),
					zap.Int64("limit", tooLarge.Limit),
				)
				response.Fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			if err == nil {
				body = maskBody(raw)
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.RequestsTotal).Inc()
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}
