package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Audit emits a structured log line per request, tagged with the
// authenticated account when present. Applied to the vault routes so
// every balance-changing call leaves a trace.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(start)),
		}
		if requestID, _ := c.Locals(requestIDHeader).(string); requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}
		if account, _ := c.Locals(AccountLocal).(string); account != "" {
			attrs = append(attrs, slog.String("account", account))
		}

		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
			logger.Error("vault request completed", attrs...)
			return err
		}
		logger.Info("vault request completed", attrs...)
		return nil
	}
}
