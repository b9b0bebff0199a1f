package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/logger"
)

// Logger emits one structured log line per HTTP request.
//
// Fields: request_id (set by RequestID), method, path, status and latency in
// milliseconds. The final status is captured after the handler chain ran.
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		log := logger.Get()
		log.Info().
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000.0).
			Msg("request")

		return err
	}
}
