package fixturetest_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fixture/dialect"
	"github.com/syssam/fixture/dialect/sql"
	"github.com/syssam/fixture/fixturetest"
)

const models = `
models:
  - name: Tag
    fields:
      - {name: id, type: int, generated: true}
      - {name: label, type: string, format: word}
`

func TestOpenAndClean(t *testing.T) {
	dir := t.TempDir()
	modelsFile := filepath.Join(dir, "models.yml")
	require.NoError(t, os.WriteFile(modelsFile, []byte(models), 0o600))
	t.Setenv("FIXTURE_MODELS", modelsFile)

	drv, cfg := fixturetest.Open(t, fixturetest.WithConfigFile(""), fixturetest.WithEnvFile(""))
	if cfg.Dialect != dialect.SQLite {
		t.Skipf("test runs on sqlite, got %s", cfg.Dialect)
	}
	fixturetest.Exec(t, drv, `CREATE TABLE tag (id INTEGER PRIMARY KEY AUTOINCREMENT, label TEXT NOT NULL)`)

	graph, err := fixturetest.LoadGraph(cfg)
	require.NoError(t, err)
	tag, ok := graph.Model("Tag")
	require.True(t, ok)

	t.Run("create", func(t *testing.T) {
		client := fixturetest.New(t, drv, cfg, graph)
		inst, err := client.Create(context.Background(), tag, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, inst.Values["label"])
		assert.Equal(t, int64(1), fixturetest.CountRows(t, drv, "tag"))
	})

	// The client of the subtest cleaned its tables when the subtest ended.
	fixturetest.AssertTableEmpty(t, drv, "tag")
}

func TestLoadGraphMissingFile(t *testing.T) {
	t.Setenv("FIXTURE_MODELS", filepath.Join(t.TempDir(), "missing.yml"))
	cfg, err := fixturetest.LoadConfig(fixturetest.WithConfigFile(""), fixturetest.WithEnvFile(""))
	require.NoError(t, err)
	_, err = fixturetest.LoadGraph(cfg)
	require.Error(t, err)
}

func TestOpenDriverUnreachable(t *testing.T) {
	cfg := &fixturetest.Config{Dialect: dialect.Postgres, DSN: "postgres://fixture@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"}
	_, err := fixturetest.OpenDriver(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping postgres")
}

func TestWithDebug(t *testing.T) {
	drv, cfg := fixturetest.Open(t, fixturetest.WithConfigFile(""), fixturetest.WithEnvFile(""))

	tests := []struct {
		level string
		debug bool
	}{
		{"info", false},
		{"", false},
		{"debug", true},
		{"trace", true},
	}
	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			log := fixturetest.NewLogger(fixturetest.LogConfig{Level: tt.level}, io.Discard)
			wrapped := fixturetest.WithDebug(drv, log)
			if tt.debug {
				assert.IsType(t, &sql.DebugDriver{}, wrapped)
			} else {
				assert.Same(t, drv, wrapped)
			}
			assert.Equal(t, cfg.Dialect, wrapped.Dialect())
		})
	}
}
