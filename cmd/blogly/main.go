// Command blogly runs the blog web application.
//
//	blogly            same as `blogly serve`
//	blogly serve      open the database, migrate, and serve HTTP
//	blogly seed       fill the database with fake users, tags and posts
//
// Settings come from config.yml, .env and the environment (see internal/config).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/blogly/internal/config"
	"github.com/sakif/blogly/internal/repository/gormdb"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	serve := serveCmd()
	root := &cobra.Command{
		Use:           "blogly",
		Short:         "A small blog: users, posts and tags",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, seedCmd())
	return root
}

// setup loads configuration and builds the logger every command shares.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}
	return cfg, newLogger(cfg), nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// openDB opens the configured backend. For a file-backed sqlite database the
// parent directory is created first.
func openDB(cfg *config.Config, logger *slog.Logger) (*gormdb.DB, error) {
	if cfg.DBDriver == gormdb.DriverSQLite && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return gormdb.New(gormdb.Config{
		Driver:       cfg.DBDriver,
		Path:         cfg.DBPath,
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		AutoMigrate:  cfg.ShouldMigrate(),
		LogQueries:   cfg.DBLogQueries,
	}, logger)
}
