package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:            "8080",
		DBDriver:        "sqlite",
		DBPath:          ":memory:",
		TracingExporter: ExporterNone,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/blogly.db", cfg.DBPath)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.True(t, cfg.DBAutoMigrate)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, ExporterNone, cfg.TracingExporter)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yml := "PORT: \"9000\"\nDB_DRIVER: postgres\nLOG_LEVEL: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("PORT", "9100")

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_InvalidFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := load(viper.New(), t.TempDir())
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port not numeric", func(c *Config) { c.Port = "http" }, "PORT"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "PORT"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "DB_DRIVER"},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, "DB_PATH"},
		{"postgres without url", func(c *Config) { c.DBDriver = "postgres"; c.DatabaseURL = "" }, "DATABASE_URL"},
		{"unknown exporter", func(c *Config) { c.TracingExporter = "zipkin" }, "TRACING_EXPORTER"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "LOG_LEVEL"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestShouldMigrate(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "development"
	cfg.DBAutoMigrate = false
	assert.True(t, cfg.ShouldMigrate(), "development always migrates")

	cfg.Env = "production"
	assert.False(t, cfg.ShouldMigrate())

	cfg.DBAutoMigrate = true
	assert.True(t, cfg.ShouldMigrate())
}
