package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8080"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	StoreBackend    string        `envconfig:"STORE_BACKEND" default:"redis"`
	MySQLDSN        string        `envconfig:"MYSQL_DSN" default:"user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	RedisPass       string        `envconfig:"REDIS_PASSWORD"`
	JWTSecret       string        `envconfig:"JWT_SECRET" default:"change-me"`
	SwaggerHost     string        `envconfig:"SWAGGER_HOST"`
	SeedOnStart     bool          `envconfig:"SEED_ON_START" default:"true"`
	RateLimit       int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"600"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Used by stockctl.
	APIURL   string `envconfig:"STOCK_API_URL" default:"http://localhost:8080/api"`
	APIToken string `envconfig:"STOCK_API_TOKEN"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	switch cfg.StoreBackend {
	case BackendRedis, BackendMySQL, BackendMemory:
	default:
		return nil, fmt.Errorf("load config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("load config: RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return &cfg, nil
}
