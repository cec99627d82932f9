package types

import "time"

// LogEntry is one captured request/response pair headed for the audit log.
type LogEntry struct {
	RequestID       string
	Method          string
	URL             string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	Duration        time.Duration
	CreatedAt       time.Time
}
