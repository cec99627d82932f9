package errs

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/logger"
)

// Handler is the fiber ErrorHandler. Known errors keep their status and message;
// anything else is logged and rendered as a generic 500.
func Handler(c *fiber.Ctx, err error) error {
	var httpErr *HTTPError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &httpErr):
	case errors.As(err, &fiberErr):
		httpErr = newHTTPError(fiberErr.Code, fiberErr.Message)
	default:
		requestID, _ := c.Locals("requestid").(string)
		log := logger.WithRequestID(requestID)
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("❌ unhandled error")
		httpErr = NewInternalServerError()
	}

	if httpErr.Status == 0 {
		httpErr.Status = http.StatusInternalServerError
	}

	return c.Status(httpErr.Status).JSON(httpErr)
}
