// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Export   ExportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// SourceConfig selects where the model table is read from.
// A non-empty DatabaseURL selects Postgres; otherwise a file is discovered
// in DataDir.
type SourceConfig struct {
	// DataDir is the directory searched for a data file (default: .)
	DataDir string `env:"DATA_DIR" default:"."`

	// File is the preferred file name inside DataDir (default: data.csv)
	File string `env:"SOURCE_FILE" default:"data.csv"`

	// DatabaseURL is an optional PostgreSQL connection string.
	// Supports both SOURCE_DATABASE_URL and DATABASE_URL env vars.
	DatabaseURL string `env:"SOURCE_DATABASE_URL" envAlt:"DATABASE_URL"`

	// Table is the Postgres table holding one row per model (default: modules)
	Table string `env:"SOURCE_TABLE" default:"modules"`

	// MaxConns is the maximum number of pool connections (default: 4)
	MaxConns int `env:"SOURCE_DB_MAX_CONNS" default:"4"`

	// LoadTimeout bounds a single source load (default: 30s)
	LoadTimeout time.Duration `env:"SOURCE_LOAD_TIMEOUT" default:"30s"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	// PDFEnabled turns PDF export on or off (default: true)
	PDFEnabled bool `env:"EXPORT_PDF_ENABLED" default:"true"`

	// FontPaths is a comma-separated list of TrueType fonts to try for CJK text.
	// Empty uses the built-in candidate list.
	FontPaths []string `env:"EXPORT_FONT_PATHS"`

	// MaxConcurrentRenders is the maximum number of parallel PDF renders (default: 4)
	MaxConcurrentRenders int `env:"EXPORT_MAX_CONCURRENT_RENDERS" default:"4"`

	// RenderWait is how long to wait for a render slot (default: 10s)
	RenderWait time.Duration `env:"EXPORT_RENDER_WAIT" default:"10s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ExportLimit is requests per minute for export endpoints (default: 20)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// APIKeys is a comma-separated list of keys accepted on admin endpoints
	APIKeys []string `env:"API_KEYS"`

	// RequireAPIKey protects admin endpoints with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// UsesDatabase reports whether the Postgres source is configured.
func (c *SourceConfig) UsesDatabase() bool {
	return c.DatabaseURL != ""
}
