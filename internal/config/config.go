// Package config loads server configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config is the full server configuration.
type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Log struct {
		Level string
	} `mapstructure:"log"`

	Storage struct {
		// Driver selects the snapshot backend: file or postgres.
		Driver      string
		Path        string
		PostgresDSN string `mapstructure:"postgres_dsn"`
	} `mapstructure:"storage"`

	AI struct {
		APIKey string `mapstructure:"api_key"`
		Model  string
	} `mapstructure:"ai"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

// Load reads configuration from an optional file, with environment
// overrides prefixed MAKHZAN_ (e.g. MAKHZAN_HTTP_ADDR).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MAKHZAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", "data/snapshot.bin")
	v.SetDefault("ai.model", "")
	v.SetDefault("metrics.enabled", true)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the file driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
