// Package config manages application configuration.
//
// It layers three sources, later ones overriding earlier ones:
//   - built-in defaults
//   - an optional YAML file (passed with --config or VOCAB_CONFIG_FILE)
//   - environment variables prefixed with VOCAB_ (a `.env` file is loaded first)
//
// The result is decoded into structured Go types and validated so the
// app fails fast on bad or missing values.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if present.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/crypto/bcrypt"
)

/*
	Env vars are read with the VOCAB_ prefix. Keys are lowercased, the
	prefix is removed and a double underscore separates nesting levels:

	  VOCAB_SERVER__PORT                      -> server.port
	  VOCAB_DATABASE__MAX_OPEN_CONNS          -> database.max_open_conns
	  VOCAB_OBSERVABILITY__LOGGING__LEVEL     -> observability.logging.level

	Values containing a comma are split into lists
	(VOCAB_SERVER__CORS_ALLOWED_ORIGINS=https://a.com,https://b.com).
*/

const (
	envPrefix = "VOCAB_"

	// EnvConfigFile names an optional YAML file when no --config flag is given.
	EnvConfigFile = "VOCAB_CONFIG_FILE"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Catalog       CatalogConfig        `koanf:"catalog"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts other than shutdown are expressed in seconds.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        int           `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int           `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int           `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// TrustedProxies lists the CIDR ranges whose X-Forwarded-For header is
	// believed. When empty the client IP is the socket peer.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,cidr"`
}

// DatabaseConfig selects the relational store and tunes its pool.
//
// With driver "sqlite" only Path is needed: the store is a single file
// and the pool is pinned to one connection. With driver "postgres" the
// connection fields are required.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=postgres sqlite"`
	Path            string `koanf:"path" validate:"required_if=Driver sqlite"`
	Host            string `koanf:"host" validate:"required_if=Driver postgres"`
	Port            int    `koanf:"port" validate:"required_if=Driver postgres"`
	User            string `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
}

// RedisConfig contains Redis connection details.
// An empty Address disables Redis (and with it login rate limiting).
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// AuthConfig controls password hashing.
type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

// RateLimitConfig bounds login attempts per client IP within a window.
// LoginRequests of 0 disables the limiter.
type RateLimitConfig struct {
	LoginRequests int           `koanf:"login_requests" validate:"min=0"`
	LoginWindow   time.Duration `koanf:"login_window" validate:"min=1s"`
}

// CatalogConfig makes the catalog's integrity rules explicit.
type CatalogConfig struct {
	// UniqueWords rejects a new word whose text already exists.
	UniqueWords bool `koanf:"unique_words"`

	// ValidateQuizWords rejects quiz templates referencing unknown word ids.
	ValidateQuizWords bool `koanf:"validate_quiz_words"`
}

// IsSQLite reports whether the file-based store is configured.
func (d DatabaseConfig) IsSQLite() bool {
	return d.Driver == DriverSQLite
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env": "development",

		"server.port":                 "8080",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.shutdown_timeout":     "10s",
		"server.cors_allowed_origins": []string{"*"},
		"server.trusted_proxies":      []string{},

		"database.driver":             DriverSQLite,
		"database.path":               "vocab.db",
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     25,
		"database.conn_max_lifetime":  300,
		"database.conn_max_idle_time": 300,
		"database.auto_migrate":       true,

		"auth.bcrypt_cost": bcrypt.DefaultCost,

		"rate_limit.login_requests": 10,
		"rate_limit.login_window":   "1m",

		"catalog.unique_words":        true,
		"catalog.validate_quiz_words": false,

		"observability.service_name":                           ServiceName,
		"observability.environment":                            "development",
		"observability.logging.level":                          "info",
		"observability.logging.format":                         "json",
		"observability.logging.slow_query_threshold":           "100ms",
		"observability.new_relic.app_log_forwarding_enabled":   true,
		"observability.new_relic.distributed_tracing_enabled":  true,
		"observability.health_checks.enabled":                  true,
		"observability.health_checks.interval":                 "30s",
		"observability.health_checks.timeout":                  "5s",
		"observability.health_checks.checks":                   []string{"database", "redis"},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML
// file at path (falling back to $VOCAB_CONFIG_FILE) and the environment.
//
// Unlike a fatal logger it returns every failure, so the caller decides
// how to exit.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if key == EnvConfigFile {
			return "", nil
		}

		key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "__", ".")
		if strings.Contains(value, ",") {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces agree on them.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
