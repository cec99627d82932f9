// Package config loads process configuration from the environment.
//
// Values come from real environment variables, optionally seeded from a
// `.env` file, are mapped onto Config through koanf and then validated so
// the server fails fast on missing credentials.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	defaultPort           = "3000"
	defaultEnv            = "local"
	defaultCluster        = "cluster0.nliquld.mongodb.net"
	defaultAppName        = "Cluster0"
	defaultDatabase       = "parcelsDB"
	defaultIdempotencyTTL = 24 * 60 * 60
	defaultLogDBPort      = "5432"
	defaultLogDBSSLMode   = "disable"
)

// envKeys maps the environment variables we read onto koanf key paths.
// Anything not listed here is ignored.
var envKeys = map[string]string{
	"APP_ENV":      "app.env",
	"APP_HOST":     "server.host",
	"PORT":         "server.port",
	"FRONTEND_URL": "server.cors_allowed_origins",

	"MONGO_URI":  "mongo.uri",
	"DB_USER":    "mongo.user",
	"DB_PASS":    "mongo.password",
	"DB_CLUSTER": "mongo.cluster",
	"DB_NAME":    "mongo.database",

	"STRIPE_SK": "stripe.secret_key",

	"REDIS_ADDR":              "redis.address",
	"REDIS_PASSWORD":          "redis.password",
	"REDIS_DB":                "redis.db",
	"IDEMPOTENCY_TTL_SECONDS": "redis.idempotency_ttl",

	"LOG_DB_HOST":     "logdb.host",
	"LOG_DB_PORT":     "logdb.port",
	"LOG_DB_NAME":     "logdb.name",
	"LOG_DB_USER":     "logdb.user",
	"LOG_DB_PASSWORD": "logdb.password",
	"LOG_DB_SSLMODE":  "logdb.sslmode",
}

// Config is the root configuration object.
type Config struct {
	App    AppConfig    `koanf:"app" validate:"required"`
	Server ServerConfig `koanf:"server" validate:"required"`
	Mongo  MongoConfig  `koanf:"mongo" validate:"required"`
	Stripe StripeConfig `koanf:"stripe" validate:"required"`
	Redis  RedisConfig  `koanf:"redis"`
	LogDB  LogDBConfig  `koanf:"logdb"`
}

type AppConfig struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

type ServerConfig struct {
	Host               string `koanf:"host"`
	Port               string `koanf:"port" validate:"required,numeric"`
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

// Addr is the listen address handed to fiber.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// MongoConfig accepts either a complete URI or Atlas credentials.
type MongoConfig struct {
	URI      string `koanf:"uri"`
	User     string `koanf:"user" validate:"required_without=URI"`
	Password string `koanf:"password" validate:"required_without=URI"`
	Cluster  string `koanf:"cluster"`
	AppName  string `koanf:"app_name"`
	Database string `koanf:"database" validate:"required"`
}

// ConnectionURI returns URI when set, otherwise the Atlas SRV URI built from
// the credentials.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.QueryEscape(m.User), url.QueryEscape(m.Password), m.Cluster, url.QueryEscape(m.AppName))
}

type StripeConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

type RedisConfig struct {
	Address        string `koanf:"address"`
	Password       string `koanf:"password"`
	DB             int    `koanf:"db" validate:"gte=0"`
	IdempotencyTTL int    `koanf:"idempotency_ttl" validate:"gte=0"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.IdempotencyTTL) * time.Second
}

// LogDBConfig points at the PostgreSQL database holding the request audit log.
type LogDBConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Name     string `koanf:"name" validate:"required_with=Host"`
	User     string `koanf:"user" validate:"required_with=Host"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

func (l LogDBConfig) Enabled() bool {
	return strings.TrimSpace(l.Host) != ""
}

func (l LogDBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		l.Host, l.Port, l.User, l.Password, l.Name, l.SSLMode)
}

// Load reads the environment into a validated Config.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = defaultEnv
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.CORSAllowedOrigins == "" {
		cfg.Server.CORSAllowedOrigins = "*"
	}
	if cfg.Mongo.Cluster == "" {
		cfg.Mongo.Cluster = defaultCluster
	}
	if cfg.Mongo.AppName == "" {
		cfg.Mongo.AppName = defaultAppName
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultDatabase
	}
	if cfg.Redis.IdempotencyTTL == 0 {
		cfg.Redis.IdempotencyTTL = defaultIdempotencyTTL
	}
	if cfg.LogDB.Port == "" {
		cfg.LogDB.Port = defaultLogDBPort
	}
	if cfg.LogDB.SSLMode == "" {
		cfg.LogDB.SSLMode = defaultLogDBSSLMode
	}
}

// String renders the non-secret parts of the config for startup logs.
func (c *Config) String() string {
	return "env=" + c.App.Env +
		" addr=" + c.Server.Addr() +
		" mongo_db=" + c.Mongo.Database +
		" redis=" + strconv.FormatBool(c.Redis.Enabled()) +
		" request_log_db=" + strconv.FormatBool(c.LogDB.Enabled())
}
