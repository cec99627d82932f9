package log

import (
	"time"
)

// Log represents an HTTP request/response audit entry.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID       string    `gorm:"type:varchar(64);index" json:"request_id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `gorm:"type:int" json:"status_code"`
	DurationMs      int64     `gorm:"type:bigint" json:"duration_ms"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
