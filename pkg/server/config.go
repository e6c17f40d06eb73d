package server

import (
	"time"

	"github.com/raptor-dev/raptor/pkg/engine"
	"github.com/raptor-dev/raptor/pkg/render"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address.
	// Default: "localhost:3000".
	Addr string

	// DocsDir is the directory served under /docs.
	// Default: "docs".
	DocsDir string

	// Watch enables reload notifications for DocsDir.
	Watch bool

	// ReadTimeout is the maximum time to read a request.
	// Default: 10 seconds.
	ReadTimeout time.Duration

	// MetricsPath is where metrics are exposed.
	// Default: "/metrics".
	MetricsPath string

	// MaxBodySize bounds documents posted to /render and sent over /ws.
	// Default: 1MB.
	MaxBodySize int64

	// MaxNodes bounds the host nodes one render may create.
	// Default: engine.MaxNodes.
	MaxNodes int

	// Debounce groups bursts of file events into one reload.
	// Default: 100 milliseconds.
	Debounce time.Duration

	// Render configures HTML output. The pretty query parameter overrides
	// Render.Pretty per request.
	Render render.RendererConfig
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:        "localhost:3000",
		DocsDir:     "docs",
		ReadTimeout: 10 * time.Second,
		MetricsPath: "/metrics",
		MaxBodySize: 1 << 20,
		MaxNodes:    engine.MaxNodes,
		Debounce:    100 * time.Millisecond,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.DocsDir == "" {
		c.DocsDir = d.DocsDir
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.MetricsPath == "" {
		c.MetricsPath = d.MetricsPath
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = d.MaxBodySize
	}
	if c.MaxNodes <= 0 {
		c.MaxNodes = d.MaxNodes
	}
	if c.Debounce <= 0 {
		c.Debounce = d.Debounce
	}
	return c
}
