package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"parcel-delivery/config"
	"parcel-delivery/logger"
	"parcel-delivery/models/log"
	"parcel-delivery/types"
)

// InitLogDB opens the PostgreSQL database that stores the request audit log.
func InitLogDB(cfg config.LogDBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Error("Failed to connect to the request log database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the request log database")
	return db, nil
}

// Migrate creates the audit log table and its indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&log.Log{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &log.Log{}, err)
	}
	if err := createIndexes(db); err != nil {
		return err
	}
	logger.Success("Request log migrations completed successfully")
	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"method", "CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)"},
		{"status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create log %s index: %w", idx.name, err)
		}
	}
	return nil
}

// RequestLogStore writes audit entries into the logs table.
type RequestLogStore struct {
	db *gorm.DB
}

func NewRequestLogStore(db *gorm.DB) *RequestLogStore {
	return &RequestLogStore{db: db}
}

func (s *RequestLogStore) Save(entry types.LogEntry) error {
	row := log.Log{
		RequestID:       entry.RequestID,
		Method:          entry.Method,
		URL:             entry.URL,
		RequestBody:     entry.RequestBody,
		RequestHeaders:  entry.RequestHeaders,
		ResponseBody:    entry.ResponseBody,
		ResponseHeaders: entry.ResponseHeaders,
		StatusCode:      entry.StatusCode,
		DurationMs:      entry.Duration.Milliseconds(),
		CreatedAt:       entry.CreatedAt,
	}
	return s.db.Create(&row).Error
}

// Close releases the underlying connection pool.
func (s *RequestLogStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
