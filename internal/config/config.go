package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat           string `mapstructure:"log_format" validate:"required,oneof=json text"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	MetricsEnabled      bool   `mapstructure:"metrics_enabled"`
	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders   bool   `mapstructure:"trust_proxy_headers"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret               string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes    int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=1440"`
	LoginRateLimitPerMinute int    `mapstructure:"login_rate_limit_per_minute" validate:"gte=0"`
	LoginRateLimitBurst     int    `mapstructure:"login_rate_limit_burst" validate:"gte=0"`
}

// PaginationConfig bounds the page size accepted by list endpoints.
type PaginationConfig struct {
	DefaultSize int `mapstructure:"default_size" validate:"required,gt=0,ltefield=MaxSize"`
	MaxSize     int `mapstructure:"max_size" validate:"required,gt=0"`
}
