package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	Environment    string `env:"ENVIRONMENT" envDefault:"dev"`
	DatabaseURL    string `env:"DATABASE_URL"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	TablePrefix    string `env:"TABLE_PREFIX"`
	AutoMigrate    bool   `env:"AUTO_MIGRATE" envDefault:"false"`
	CORSOrigins    string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`

	// Auth: JWKSURL takes precedence over JWTSecret when both are set
	JWTSecret string `env:"JWT_SECRET"`
	JWKSURL   string `env:"JWKS_URL"`

	// Optional live activity fan-out
	RedisURL string `env:"REDIS_URL"`

	// Tracing is disabled when empty
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	AuditQueueSize int `env:"AUDIT_QUEUE_SIZE" envDefault:"1024"`
	AuditWorkers   int `env:"AUDIT_WORKERS" envDefault:"2"`

	LogDir      string `env:"LOG_DIR"`
	LogMaxFiles int    `env:"LOG_MAX_FILES" envDefault:"10"`

	// Debug flags - default to true outside prod
	Debug *bool `env:"DEBUG"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTooling reads configuration for offline tools, which never verify tokens.
func LoadTooling() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.TablePrefix == "" {
		cfg.TablePrefix = getTablePrefix(cfg.Environment)
	}
	if cfg.Debug == nil {
		debug := cfg.Environment != "prod"
		cfg.Debug = &debug
	}
	return &cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if c.JWTSecret == "" && c.JWKSURL == "" {
		return fmt.Errorf("one of JWT_SECRET or JWKS_URL is required")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.AuditQueueSize <= 0 {
		return fmt.Errorf("AUDIT_QUEUE_SIZE must be positive")
	}
	if c.AuditWorkers <= 0 {
		return fmt.Errorf("AUDIT_WORKERS must be positive")
	}
	return nil
}

// DebugEnabled reports whether debug features are on.
func (c *Config) DebugEnabled() bool {
	return c.Debug != nil && *c.Debug
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// TABLE_PREFIX wins when set, including from a .env loaded after parsing
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}
