package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load looks at for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PORT", "DATABASE_URL",
		"CLIENTREG_API_HOST", "CLIENTREG_API_PORT", "CLIENTREG_DB_DRIVER", "CLIENTREG_DB_DSN",
		"CLIENTREG_DB_MAX_OPEN_CONNS", "CLIENTREG_CORS_ORIGINS", "CLIENTREG_LOG_LEVEL",
		"CLIENTREG_LOG_FORMAT", "CLIENTREG_DEV_MODE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIHost, cfg.APIHost)
	assert.Equal(t, DefaultAPIPort, cfg.APIPort)
	assert.Equal(t, DefaultDBDriver, cfg.DBDriver)
	assert.Equal(t, DefaultDBDSN, cfg.DBDSN)
	assert.Equal(t, DefaultDBMaxOpenConns, cfg.DBMaxOpenConns)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.IsDevMode())
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://app@localhost/clients?sslmode=disable")
	t.Setenv("CLIENTREG_DB_DRIVER", "postgres")
	t.Setenv("CLIENTREG_LOG_FORMAT", "json")
	t.Setenv("CLIENTREG_DEV_MODE", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://app@localhost/clients?sslmode=disable", cfg.DBDSN)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.IsDevMode())
}

func TestLoad_PrefixedNameWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("CLIENTREG_API_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.APIPort)
}

func TestLoad_ConfigFileAndDotEnv(t *testing.T) {
	clearEnv(t)

	dir, err := os.Getwd()
	require.NoError(t, err)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_host: 127.0.0.1
db_dsn: from-file.sqlite3
log_level: debug
cors_origins:
  - https://app.example.com
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLIENTREG_DB_DSN=from-env.sqlite3\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CLIENTREG_DB_DSN") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.APIHost)
	assert.Equal(t, "from-env.sqlite3", cfg.DBDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			APIPort:   DefaultAPIPort,
			DBDriver:  "sqlite",
			DBDSN:     "x.sqlite3",
			LogLevel:  "info",
			LogFormat: "text",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "db_driver"},
		{"empty dsn", func(c *Config) { c.DBDSN = "" }, "db_dsn"},
		{"port out of range", func(c *Config) { c.APIPort = 70000 }, "api_port"},
		{"negative pool", func(c *Config) { c.DBMaxOpenConns = -1 }, "db_max_open_conns"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
