package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blogly/internal/config"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := rootCmd()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	seedCmd, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	for _, flag := range []string{"users", "posts", "tags", "seed"} {
		assert.NotNil(t, seedCmd.Flags().Lookup(flag), flag)
	}
	assert.NotNil(t, root.RunE, "bare `blogly` serves")
}

func TestOpenDB_InMemory(t *testing.T) {
	cfg := &config.Config{Env: "test", DBDriver: "sqlite", DBPath: ":memory:", LogLevel: "error", LogFormat: "text"}

	db, err := openDB(cfg, newLogger(cfg))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	assert.NoError(t, db.Ping(t.Context()))
}
