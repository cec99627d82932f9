package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/logger"
	"parcel-delivery/utils"
)

// RequestLog writes one access line per request and queues a sanitized copy
// of the exchange on the audit logger. Errors from later handlers are rendered
// here so the entry carries the final status and body.
func RequestLog(audit *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		entry := utils.CreateSanitizedLogEntry(c, started)

		log := logger.WithRequestID(entry.RequestID)
		event := log.Info()
		if entry.StatusCode >= fiber.StatusInternalServerError {
			event = log.Error()
		} else if entry.StatusCode >= fiber.StatusBadRequest {
			event = log.Warn()
		}
		event.
			Str("method", entry.Method).
			Str("url", entry.URL).
			Int("status", entry.StatusCode).
			Dur("latency", entry.Duration).
			Str("ip", c.IP()).
			Msg("request")

		if audit != nil {
			audit.Log(entry)
		}
		return nil
	}
}
