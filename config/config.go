package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Menu     MenuConfig     `yaml:"menu"`
	Kitchen  KitchenConfig  `yaml:"kitchen"`
}

// ServerConfig holds the server-related configuration. The per-client rate
// limiter is off unless RateLimitPerSec is positive. A negative cache TTL
// disables the menu cache.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // sqlite or postgres
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// MenuConfig overrides the built-in seed menu when Items is non-empty.
type MenuConfig struct {
	Items []MenuItemConfig `yaml:"items"`
}

// MenuItemConfig is one seed entry. Preparation bounds are in minutes.
type MenuItemConfig struct {
	Name     string  `yaml:"name"`
	PrepMinM float64 `yaml:"prep_min_m"`
	PrepMaxM float64 `yaml:"prep_max_m"`
}

// KitchenConfig controls ready-time sampling.
type KitchenConfig struct {
	// RandomSeed seeds the ready-time sampler. Zero means seed from the clock.
	RandomSeed int64 `yaml:"random_seed"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultSQLiteDSN is a private in-memory database, reset on every start.
	DefaultSQLiteDSN = "file::memory:?_foreign_keys=on"
)

// Load reads the configuration from the given path. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("config file %s not found; using defaults", path)
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3030
	}
	if cfg.Server.RateLimitPerSec > 0 && cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds == 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	switch cfg.Database.Driver {
	case "":
		cfg.Database.Driver = DriverSQLite
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		if cfg.Database.Driver == DriverPostgres {
			return errors.New("database.dsn is required for the postgres driver")
		}
		cfg.Database.DSN = DefaultSQLiteDSN
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	for i, item := range cfg.Menu.Items {
		if item.Name == "" {
			return fmt.Errorf("menu.items[%d]: name is required", i)
		}
		if item.PrepMinM < 0 || item.PrepMaxM < item.PrepMinM {
			return fmt.Errorf("menu.items[%d] (%s): invalid prep range [%g, %g]", i, item.Name, item.PrepMinM, item.PrepMaxM)
		}
	}
	return nil
}
