package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	// API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Store settings
	DBDriver       string `mapstructure:"db_driver"` // "sqlite" or "postgres"
	DBDSN          string `mapstructure:"db_dsn"`
	DBMaxOpenConns int    `mapstructure:"db_max_open_conns"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "text" or "json"

	DevMode bool `mapstructure:"dev_mode"`

	ConfigPath string
}

const (
	EnvPrefix             = "CLIENTREG"
	DefaultEnvFile        = ".env"
	DefaultAPIHost        = "0.0.0.0"
	DefaultAPIPort        = 3000
	DefaultDBDriver       = "sqlite"
	DefaultDBDSN          = "clientreg.sqlite3"
	DefaultDBMaxOpenConns = 10
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Load reads settings from defaults, an optional YAML file, a .env file and
// the environment, in increasing order of precedence. PORT and DATABASE_URL
// are honoured alongside their prefixed names.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultEnvFile, err)
	}

	v := viper.New()

	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("db_driver", DefaultDBDriver)
	v.SetDefault("db_dsn", DefaultDBDSN)
	v.SetDefault("db_max_open_conns", DefaultDBMaxOpenConns)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("dev_mode", false)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv("api_port", EnvPrefix+"_API_PORT", "PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("db_dsn", EnvPrefix+"_DB_DSN", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBDriver != "sqlite" && c.DBDriver != "postgres" {
		return fmt.Errorf("db_driver must be 'sqlite' or 'postgres'")
	}

	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn is required")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535, got %d", c.APIPort)
	}

	if c.DBMaxOpenConns < 0 {
		return fmt.Errorf("db_max_open_conns must not be negative")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be 'text' or 'json'")
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return c.DevMode
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}
