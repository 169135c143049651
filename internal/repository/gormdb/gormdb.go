// Package gormdb implements the repository interfaces on top of gorm.
//
// Two backends are supported:
//   - sqlite: a pure-Go modernc.org/sqlite connection handed to gorm's sqlite
//     dialector. Used for local development and for every test (":memory:").
//   - postgres: gorm's pgx-based postgres dialector, configured from a DSN.
//
// A single *DB value implements UserRepository, PostRepository and
// TagRepository. It is created once by the composition root and passed down
// explicitly; nothing in this package keeps a global handle.
package gormdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Registers the "sqlite" database/sql driver (pure Go, no cgo).
	_ "modernc.org/sqlite"

	"github.com/sakif/blogly/internal/model"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and tunes the database backend.
type Config struct {
	Driver       string // DriverSQLite or DriverPostgres
	Path         string // sqlite file path, or ":memory:"
	DSN          string // postgres connection string
	MaxOpenConns int    // postgres only; sqlite always uses one connection
	MaxIdleConns int
	AutoMigrate  bool
	LogQueries   bool // log every statement, not only slow ones and errors
}

// DB wraps a gorm handle and provides the repository methods.
type DB struct {
	conn   *gorm.DB
	logger *slog.Logger
}

// New opens the configured database, registers the posts_tags join table and,
// when cfg.AutoMigrate is set, creates or updates the schema.
func New(cfg Config, log *slog.Logger) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite, "":
		d, err := openSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		dialector = d
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("gormdb: unsupported driver %q", cfg.Driver)
	}

	level := logger.Warn
	if cfg.LogQueries {
		level = logger.Info
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: newQueryLogger(log, level),
	})
	if err != nil {
		return nil, fmt.Errorf("gormdb: opening %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverPostgres {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("gormdb: getting sql.DB: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	db, err := wrap(conn, log)
	if err != nil {
		_ = closeConn(conn)
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(context.Background()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	log.Info("database ready",
		slog.String("driver", cfg.Driver),
		slog.Bool("auto_migrate", cfg.AutoMigrate),
	)
	return db, nil
}

// wrap registers the custom join table on both sides of the posts <-> tags
// relation. It must run before the first query that touches Post.Tags or Tag.Posts.
func wrap(conn *gorm.DB, log *slog.Logger) (*DB, error) {
	if err := conn.SetupJoinTable(&model.Post{}, "Tags", &model.PostTag{}); err != nil {
		return nil, fmt.Errorf("gormdb: setting up post tags join table: %w", err)
	}
	if err := conn.SetupJoinTable(&model.Tag{}, "Posts", &model.PostTag{}); err != nil {
		return nil, fmt.Errorf("gormdb: setting up tag posts join table: %w", err)
	}
	return &DB{conn: conn, logger: log}, nil
}

// openSQLite opens a modernc connection pool and hands it to gorm.
//
// SQLite allows one writer at a time, and every ":memory:" connection is a
// separate database, so the pool is pinned to a single connection. PRAGMAs are
// per-connection, which that also makes safe to run once here.
func openSQLite(path string) (gorm.Dialector, error) {
	if path == "" {
		path = ":memory:"
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("gormdb: opening sqlite %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("gormdb: pinging sqlite: %w", err)
	}
	// Foreign keys are OFF by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("gormdb: enabling foreign keys: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("gormdb: setting WAL mode: %w", err)
	}

	return gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", Conn: conn}), nil
}

// Migrate creates or updates the users, posts, tags and posts_tags tables.
// posts_tags is migrated through the Post.Tags join table registration.
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.conn.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Post{},
	); err != nil {
		return fmt.Errorf("gormdb: running migrations: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return fmt.Errorf("gormdb: getting sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	return closeConn(db.conn)
}

func closeConn(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
