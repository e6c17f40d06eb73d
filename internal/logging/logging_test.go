package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raptor-dev/raptor/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("rendered", zap.String("doc", "card.yaml"))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "rendered", entry["message"])
	assert.Equal(t, "card.yaml", entry["doc"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug", Development: true}, &buf)
	require.NoError(t, err)

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewDevelopmentColor(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	tests := []struct {
		name    string
		noColor bool
		colored bool
	}{
		{"colored", false, true},
		{"plain", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color.NoColor = tt.noColor
			var buf bytes.Buffer
			log, err := New(config.LogConfig{Level: "info", Development: true}, &buf)
			require.NoError(t, err)

			log.Info("hello")
			assert.Contains(t, buf.String(), "INFO")
			assert.Equal(t, tt.colored, bytes.Contains(buf.Bytes(), []byte("\x1b[")))
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raptor.log")
	log, err := New(config.LogConfig{Level: "warn", File: path}, &bytes.Buffer{})
	require.NoError(t, err)

	log.Info("skipped")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"kept"`)
	assert.NotContains(t, string(data), "skipped")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
