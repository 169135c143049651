package gormdb

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sakif/blogly/internal/apperror"
)

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fixedQuery(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNew_LogQueries(t *testing.T) {
	tests := []struct {
		name       string
		logQueries bool
		wantSQL    bool
	}{
		{name: "every statement logged", logQueries: true, wantSQL: true},
		{name: "quiet by default", logQueries: false, wantSQL: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			db, err := New(Config{
				Driver:      DriverSQLite,
				Path:        ":memory:",
				AutoMigrate: true,
				LogQueries:  tt.logQueries,
			}, bufferLogger(&buf))
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })
			buf.Reset()

			_, err = db.GetUserByID(context.Background(), 7)
			require.ErrorIs(t, err, apperror.ErrNotFound)
			_, err = db.ListUsers(context.Background())
			require.NoError(t, err)

			out := buf.String()
			assert.NotContains(t, out, "level=ERROR", "record not found is not a failure")
			if tt.wantSQL {
				assert.Contains(t, out, "SELECT")
				assert.Contains(t, out, "users")
			} else {
				assert.Empty(t, out)
			}
		})
	}
}

func TestQueryLogger_Trace(t *testing.T) {
	tests := []struct {
		name      string
		level     logger.LogLevel
		elapsed   time.Duration
		err       error
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "failure logged at error",
			level:     logger.Warn,
			err:       errors.New("no such table: users"),
			wantLevel: "level=ERROR",
			wantMsg:   "query failed",
		},
		{
			name:      "slow statement logged at warn",
			level:     logger.Warn,
			elapsed:   time.Second,
			wantLevel: "level=WARN",
			wantMsg:   "slow query",
		},
		{
			name:      "fast statement logged at info level",
			level:     logger.Info,
			wantLevel: "level=INFO",
			wantMsg:   "msg=query",
		},
		{
			name:      "record not found logged as a plain statement",
			level:     logger.Info,
			err:       gorm.ErrRecordNotFound,
			wantLevel: "level=INFO",
			wantMsg:   "msg=query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ql := newQueryLogger(bufferLogger(&buf), tt.level)

			ql.Trace(context.Background(), time.Now().Add(-tt.elapsed), fixedQuery("SELECT * FROM users", 3), tt.err)

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, tt.wantMsg)
			assert.Contains(t, out, `sql="SELECT * FROM users"`)
			assert.Contains(t, out, "rows=3")
		})
	}
}

func TestQueryLogger_TraceQuiet(t *testing.T) {
	tests := []struct {
		name  string
		level logger.LogLevel
		err   error
	}{
		{name: "fast statement at warn", level: logger.Warn},
		{name: "record not found at warn", level: logger.Warn, err: gorm.ErrRecordNotFound},
		{name: "silent drops failures", level: logger.Silent, err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ql := newQueryLogger(bufferLogger(&buf), tt.level)

			ql.Trace(context.Background(), time.Now(), fixedQuery("SELECT 1", 1), tt.err)

			assert.Empty(t, buf.String())
		})
	}
}

func TestQueryLogger_LogModeCopies(t *testing.T) {
	var buf bytes.Buffer
	ql := newQueryLogger(bufferLogger(&buf), logger.Warn)

	loud := ql.LogMode(logger.Info)
	loud.Trace(context.Background(), time.Now(), fixedQuery("SELECT 1", 1), nil)
	assert.Contains(t, buf.String(), "SELECT 1")

	buf.Reset()
	ql.Trace(context.Background(), time.Now(), fixedQuery("SELECT 1", 1), nil)
	assert.Empty(t, buf.String(), "LogMode must not change the original logger")
}
