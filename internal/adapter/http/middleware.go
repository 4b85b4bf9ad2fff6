package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// requestid middleware stores the id under this key.
const requestIDKey = "requestid"

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// RequestLogger logs every request once it has completed. Handler errors
// are written through the app's error handler first so the logged status
// is the one the client receives.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID(c),
		}
		switch {
		case status >= 500:
			slog.Error("request failed with server error", attrs...)
		case status >= 400:
			slog.Warn("request failed with client error", attrs...)
		default:
			slog.Info("request completed", attrs...)
		}
		return nil
	}
}
