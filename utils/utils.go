package utils

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/errs"
	"parcel-delivery/types"
)

// maxLoggedBody caps how much of a body ends up in the audit log.
const maxLoggedBody = 4096

// sensitiveHeaders never reach the audit log.
var sensitiveHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "Stripe-Signature"}

// dayConfig parses calendar days in UTC.
var dayConfig = &now.Config{
	WeekStartDay: time.Sunday,
	TimeLocation: time.UTC,
}

// ParseObjectIDParam reads a route param as an ObjectID. A malformed value is
// reported as a bad request naming the resource, e.g. "Invalid parcel ID.".
func ParseObjectIDParam(c *fiber.Ctx, param, resource string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, errs.NewBadRequestError("Invalid "+resource+" ID.", nil)
	}
	return id, nil
}

// ExactMatchPattern builds an anchored regex matching value literally.
func ExactMatchPattern(value string) string {
	return "^" + regexp.QuoteMeta(value) + "$"
}

// DayRange returns the first and last instant of the UTC calendar day in date (YYYY-MM-DD).
func DayRange(date string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", date, dayConfig.TimeLocation)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	day := dayConfig.With(t)
	return day.BeginningOfDay(), day.EndOfDay(), nil
}

// sanitizeBody keeps bodies readable in the log while trimming large payloads.
func sanitizeBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxLoggedBody {
		return "[LARGE_BODY_TRUNCATED] " + string(body[:maxLoggedBody])
	}
	return string(body)
}

func sanitizeHeaders(headers map[string][]string) string {
	for _, h := range sensitiveHeaders {
		if _, ok := headers[h]; ok {
			headers[h] = []string{"[REDACTED]"}
		}
	}
	b, err := json.Marshal(headers)
	if err != nil {
		return ""
	}
	return string(b)
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx, started time.Time) types.LogEntry {
	requestID, _ := c.Locals("requestid").(string)

	return types.LogEntry{
		RequestID:       strings.Clone(requestID),
		Method:          strings.Clone(c.Method()),
		URL:             strings.Clone(c.OriginalURL()),
		RequestBody:     sanitizeBody(c.Body()),
		ResponseBody:    sanitizeBody(c.Response().Body()),
		RequestHeaders:  sanitizeHeaders(c.GetReqHeaders()),
		ResponseHeaders: sanitizeHeaders(c.GetRespHeaders()),
		StatusCode:      c.Response().StatusCode(),
		Duration:        time.Since(started),
		CreatedAt:       time.Now(),
	}
}
