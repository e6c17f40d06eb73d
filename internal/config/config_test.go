package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raptor-dev/raptor/internal/errors"
	"github.com/raptor-dev/raptor/pkg/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults when no file exists", func(t *testing.T) {
		cfg, err := Load(t.TempDir(), nil)
		require.NoError(t, err)

		assert.Equal(t, DefaultAddr, cfg.Server.Addr)
		assert.Equal(t, DefaultDocsDir, cfg.Server.DocsDir)
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "/metrics", cfg.Server.MetricsPath)
		assert.Equal(t, engine.MaxNodes, cfg.Server.MaxNodes)
		assert.Equal(t, "  ", cfg.Render.Indent)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Empty(t, cfg.Path())
		assert.Empty(t, cfg.Dir())
	})

	t.Run("Should merge the file over defaults", func(t *testing.T) {
		dir := writeConfig(t, `
render:
  pretty: true
server:
  addr: ":8080"
  read_timeout: 30s
publish:
  bucket: site
`)
		cfg, err := Load(dir, nil)
		require.NoError(t, err)

		assert.True(t, cfg.Render.Pretty)
		assert.Equal(t, "  ", cfg.Render.Indent)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, DefaultDocsDir, cfg.Server.DocsDir)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "site", cfg.Publish.Bucket)
		assert.Equal(t, dir, cfg.Dir())
	})

	t.Run("Should apply environment over the file", func(t *testing.T) {
		dir := writeConfig(t, "server:\n  docs_dir: from-file\n")
		t.Setenv("RAPTOR_SERVER__DOCS_DIR", "from-env")
		t.Setenv("RAPTOR_SERVER__WATCH", "true")
		t.Setenv("RAPTOR_LOG__LEVEL", "debug")
		t.Setenv("RAPTOR_SERVER__MAX_NODES", "500")

		cfg, err := Load(dir, nil)
		require.NoError(t, err)

		assert.Equal(t, 500, cfg.Server.MaxNodes)
		assert.Equal(t, "from-env", cfg.Server.DocsDir)
		assert.True(t, cfg.Server.Watch)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Should apply overrides last", func(t *testing.T) {
		t.Setenv("RAPTOR_SERVER__ADDR", "localhost:9000")

		cfg, err := Load(t.TempDir(), map[string]any{
			"server.addr":    "localhost:9100",
			"publish.region": "eu-west-1",
		})
		require.NoError(t, err)

		assert.Equal(t, "localhost:9100", cfg.Server.Addr)
		assert.Equal(t, "eu-west-1", cfg.Publish.Region)
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unclosed"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad metrics path", "server:\n  metrics_path: metrics\n"},
		{"bad address", "server:\n  addr: nowhere\n"},
		{"zero node limit", "server:\n  max_nodes: 0\n"},
		{"absolute prefix", "publish:\n  prefix: /pages\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)

			var re *errors.RaptorError
			require.True(t, stderrors.As(err, &re))
			assert.Equal(t, errors.CodeInvalidConfig, re.Code)
		})
	}
}

func TestSaveTo(t *testing.T) {
	cfg := New()
	cfg.Publish.Bucket = "site"
	cfg.Server.Watch = true

	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, cfg.SaveTo(path))
	assert.Equal(t, path, cfg.Path())

	loaded, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "site", loaded.Publish.Bucket)
	assert.True(t, loaded.Server.Watch)
	assert.Equal(t, cfg.Server.ReadTimeout, loaded.Server.ReadTimeout)
}

func TestTransformEnvKey(t *testing.T) {
	key, value := transformEnvKey("RAPTOR_SERVER__METRICS_PATH", "/m")
	assert.Equal(t, "server.metrics_path", key)
	assert.Equal(t, "/m", value)
}
