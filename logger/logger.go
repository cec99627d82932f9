package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/rs/zerolog"
)

var (
	base    zerolog.Logger
	logFile io.Writer
)

// ✅ লগ ফাইল এবং কনসোলে লগিং সেটআপ
func init() {
	plain := []io.Writer{os.Stdout}

	// Ensure the log directory exists.
	if err := os.MkdirAll("log/app", os.ModePerm); err != nil {
		fmt.Println("❌ Could not create log directory:", err)
	} else {
		fileName := fmt.Sprintf("log/app/app_%s.log", time.Now().Format("02-01-2006"))
		f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Println("❌ Could not open log file:", err)
		} else {
			logFile = f
			plain = append(plain, f)
		}
	}

	base = newLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	// fiber's own log lines are plain text, keep them off the JSON writer
	fiberlog.SetOutput(io.MultiWriter(plain...))
	fiberlog.SetLevel(fiberlog.LevelInfo)
}

func newLogger(stdout io.Writer) zerolog.Logger {
	writers := []io.Writer{stdout}
	if logFile != nil {
		writers = append(writers, logFile)
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

// Configure adjusts output and verbosity for the runtime environment.
// Only local runs get the colored console writer.
func Configure(env string) {
	switch env {
	case "local":
		base = newLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).Level(zerolog.DebugLevel)
	case "production":
		base = newLogger(os.Stdout).Level(zerolog.InfoLevel)
		fiberlog.SetLevel(fiberlog.LevelWarn)
	default:
		base = newLogger(os.Stdout).Level(zerolog.DebugLevel)
	}
}

// WithRequestID returns a child logger tagged with the request id.
func WithRequestID(requestID string) zerolog.Logger {
	return base.With().Str("request_id", requestID).Logger()
}

// ✅ সাকসেস লগ প্রিন্ট করার ফাংশন
func Success(message string) {
	base.Info().Msg("✅ " + message)
}

func Error(message string, err error) {
	event := base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("❌ " + message)
}

func Warning(message string) {
	base.Warn().Msg("⚠️ " + message)
}

func Debug(message string) {
	base.Debug().Msg("🐛 " + message)
}

func Info(message string) {
	base.Info().Msg("ℹ️ " + message)
}
