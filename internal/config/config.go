// Package config loads storefront configuration from defaults, an optional YAML file
// and STOREFRONT_ environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment override, e.g. STOREFRONT_CATALOG_SOURCE.
const EnvPrefix = "STOREFRONT"

// Catalog source kinds.
const (
	SourceSeed  = "seed"
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceSQL   = "sql"
	SourceRedis = "redis"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type APIConfig struct {
	Prefix         string          `mapstructure:"prefix"`
	MaxBodyBytes   int64           `mapstructure:"max_body_bytes"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig is a per-client token bucket. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

type CatalogConfig struct {
	Source string            `mapstructure:"source"`
	Locale string            `mapstructure:"locale"`
	File   FileSourceConfig  `mapstructure:"file"`
	HTTP   HTTPSourceConfig  `mapstructure:"http"`
	SQL    SQLSourceConfig   `mapstructure:"sql"`
	Redis  RedisSourceConfig `mapstructure:"redis"`
}

type FileSourceConfig struct {
	Path string `mapstructure:"path"`
}

type HTTPSourceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SQLSourceConfig selects a database/sql driver: "sqlite" or "postgres".
type SQLSourceConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RedisSourceConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("api.prefix", "/api")
	v.SetDefault("api.max_body_bytes", 1<<20)
	v.SetDefault("api.request_timeout", 10*time.Second)
	v.SetDefault("api.rate_limit.rps", 20.0)
	v.SetDefault("api.rate_limit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age_seconds", 600)

	v.SetDefault("catalog.source", SourceSeed)
	v.SetDefault("catalog.locale", "zh-TW")
	v.SetDefault("catalog.file.path", "catalog.json")
	v.SetDefault("catalog.http.url", "")
	v.SetDefault("catalog.http.timeout", 10*time.Second)
	v.SetDefault("catalog.sql.driver", "sqlite")
	v.SetDefault("catalog.sql.dsn", "file:storefront.db")
	v.SetDefault("catalog.redis.addr", "localhost:6379")
	v.SetDefault("catalog.redis.password", "")
	v.SetDefault("catalog.redis.db", 0)
	v.SetDefault("catalog.redis.key", "storefront:catalog")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Load reads configuration. An explicit path must exist; without one, ./storefront.yaml
// is read when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings a source or server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.Catalog.Source {
	case SourceSeed:
	case SourceFile:
		if c.Catalog.File.Path == "" {
			errs = append(errs, errors.New("catalog.file.path is required for the file source"))
		}
	case SourceHTTP:
		if c.Catalog.HTTP.URL == "" {
			errs = append(errs, errors.New("catalog.http.url is required for the http source"))
		}
	case SourceSQL:
		if !slices.Contains([]string{"sqlite", "postgres"}, c.Catalog.SQL.Driver) {
			errs = append(errs, fmt.Errorf("catalog.sql.driver must be sqlite or postgres, got %q", c.Catalog.SQL.Driver))
		}
		if c.Catalog.SQL.DSN == "" {
			errs = append(errs, errors.New("catalog.sql.dsn is required for the sql source"))
		}
	case SourceRedis:
		if c.Catalog.Redis.Addr == "" || c.Catalog.Redis.Key == "" {
			errs = append(errs, errors.New("catalog.redis.addr and catalog.redis.key are required for the redis source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog.source %q", c.Catalog.Source))
	}

	if _, err := language.Parse(c.Catalog.Locale); err != nil {
		errs = append(errs, fmt.Errorf("catalog.locale: %w", err))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if !slices.Contains([]string{"json", "console"}, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.API.Prefix != "" && !strings.HasPrefix(c.API.Prefix, "/") {
		errs = append(errs, fmt.Errorf("api.prefix must start with /, got %q", c.API.Prefix))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LocaleTag is the collation locale for name sorting. Validate guarantees it parses.
func (c CatalogConfig) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}
