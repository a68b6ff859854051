package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request. 5xx logs at error,
// 4xx at warn, everything else at info.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()

		var e *zerolog.Event
		switch {
		case status >= 500:
			e = log.Error()
		case status >= 400:
			e = log.Warn()
		default:
			e = log.Info()
		}

		if len(c.Errors) > 0 {
			e = e.Str("errors", c.Errors.String())
		}

		e.Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
