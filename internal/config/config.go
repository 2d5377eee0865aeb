// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig selects and tunes the database backend.
type StoreConfig struct {
	Driver   string `yaml:"driver" mapstructure:"driver"` // postgres | sqlite
	Path     string `yaml:"path" mapstructure:"path"`     // sqlite only
	MaxConns int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// DatabaseConfig holds the Postgres connection parameters. All four values
// are required when the postgres driver is selected.
type DatabaseConfig struct {
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Host     string `yaml:"host" mapstructure:"host"`
	Name     string `yaml:"name" mapstructure:"name"`
}

// URL builds the connection string for pgx.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", d.Username, d.Password, d.Host, d.Name)
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port             int      `yaml:"port" mapstructure:"port"`
	CORSOrigins      []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RatePerMinute    int      `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	GeoJSONPerMinute int      `yaml:"geojson_per_minute" mapstructure:"geojson_per_minute"`
}

// CacheConfig configures the occupation-name TTL cache. When disabled every
// call reads through to the database, which tests rely on to observe fresh
// data.
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`
	OccupationTTL time.Duration `yaml:"occupation_ttl" mapstructure:"occupation_ttl"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and LMIC_* environment
// variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LMIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.path", "")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	// Registered empty so AutomaticEnv can populate them through Unmarshal.
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.name", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", []string{
		"https://dallas-college-lmic.github.io",
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	})
	v.SetDefault("server.rate_per_minute", 30)
	v.SetDefault("server.geojson_per_minute", 10)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.occupation_ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that every required value is present. Missing database
// values are reported together in one error, not one at a time.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "postgres":
		var missing []string
		if c.Database.Username == "" {
			missing = append(missing, "database.username")
		}
		if c.Database.Password == "" {
			missing = append(missing, "database.password")
		}
		if c.Database.Host == "" {
			missing = append(missing, "database.host")
		}
		if c.Database.Name == "" {
			missing = append(missing, "database.name")
		}
		if len(missing) > 0 {
			return eris.Errorf("config: missing required values: %s", strings.Join(missing, ", "))
		}
	case "sqlite":
		if c.Store.Path == "" {
			return eris.New("config: missing required values: store.path")
		}
	default:
		return eris.Errorf("config: unsupported store driver: %s", c.Store.Driver)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
