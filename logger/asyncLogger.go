package logger

import (
	"sync"

	"parcel-delivery/types"
)

// LogSink persists audit entries. A nil sink keeps entries in the process log only.
type LogSink interface {
	Save(entry types.LogEntry) error
}

type AsyncLogger struct {
	sink    LogSink
	channel chan types.LogEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsyncLogger(sink LogSink) *AsyncLogger {
	return &AsyncLogger{
		sink:    sink,
		channel: make(chan types.LogEntry, 100), // Buffered channel to hold log entries
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the channel until Close is called. Run it in its own goroutine.
func (logger *AsyncLogger) ProcessLog() {
	defer close(logger.done)
	Debug("Starting asynchronous request logger")

	for logEntry := range logger.channel {
		if logger.sink == nil {
			base.Debug().
				Str("request_id", logEntry.RequestID).
				Str("method", logEntry.Method).
				Str("url", logEntry.URL).
				Int("status", logEntry.StatusCode).
				Msg("📝 request log")
			continue
		}

		if err := logger.sink.Save(logEntry); err != nil {
			Error("Failed to insert request log entry", err)
		}
	}
}

// Log queues an entry without blocking the request. Entries are dropped when
// the buffer is full or the logger is closed.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	logger.mu.RLock()
	defer logger.mu.RUnlock()

	if logger.closed {
		Warning("Request logger closed, dropping entry for " + entry.Method + " " + entry.URL)
		return
	}

	select {
	case logger.channel <- entry:
	default:
		Warning("Request log buffer full, dropping entry for " + entry.Method + " " + entry.URL)
	}
}

// Close stops accepting entries and waits for the queue to drain. Calling it
// more than once is safe.
func (logger *AsyncLogger) Close() {
	logger.mu.Lock()
	if !logger.closed {
		logger.closed = true
		close(logger.channel)
	}
	logger.mu.Unlock()

	<-logger.done
}
