package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/raptor-dev/raptor/internal/errors"
	"github.com/raptor-dev/raptor/pkg/engine"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "raptor.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "RAPTOR_"

	// DefaultAddr is the default listen address of the render server.
	DefaultAddr = "localhost:3000"

	// DefaultDocsDir is the default directory of tree documents.
	DefaultDocsDir = "docs"
)

// Config is the complete raptor configuration.
type Config struct {
	Render  RenderConfig  `koanf:"render" yaml:"render"`
	Server  ServerConfig  `koanf:"server" yaml:"server"`
	Publish PublishConfig `koanf:"publish" yaml:"publish"`
	Log     LogConfig     `koanf:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig controls HTML serialization.
type RenderConfig struct {
	Pretty bool   `koanf:"pretty" yaml:"pretty"`
	Indent string `koanf:"indent" yaml:"indent"`
}

// ServerConfig contains render server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `koanf:"addr" yaml:"addr" validate:"required,hostname_port"`

	// DocsDir holds the documents served under /docs.
	DocsDir string `koanf:"docs_dir" yaml:"docs_dir" validate:"required"`

	// Watch broadcasts a reload to websocket clients when DocsDir changes.
	Watch bool `koanf:"watch" yaml:"watch"`

	// ReadTimeout bounds reading a request, e.g. "10s".
	ReadTimeout time.Duration `koanf:"read_timeout" yaml:"read_timeout" validate:"gt=0"`

	// MetricsPath is where Prometheus metrics are exposed.
	MetricsPath string `koanf:"metrics_path" yaml:"metrics_path" validate:"required,startswith=/"`

	// MaxNodes bounds the host nodes a single render may create.
	MaxNodes int `koanf:"max_nodes" yaml:"max_nodes" validate:"gt=0"`
}

// PublishConfig names the bucket rendered documents are uploaded to.
type PublishConfig struct {
	Bucket string `koanf:"bucket" yaml:"bucket"`
	Prefix string `koanf:"prefix" yaml:"prefix"`
	Region string `koanf:"region" yaml:"region"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `koanf:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `koanf:"development" yaml:"development"`

	// File enables a rotated log file in addition to stderr.
	File string `koanf:"file" yaml:"file"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{
			Indent: "  ",
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			DocsDir:     DefaultDocsDir,
			ReadTimeout: 10 * time.Second,
			MetricsPath: "/metrics",
			MaxNodes:    engine.MaxNodes,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for raptor.yaml in the directory; a missing file is not an error.
func Load(dir string, overrides map[string]any) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName), overrides)
}

// LoadFile builds the configuration from, in increasing precedence, the
// defaults, the YAML file at path, RAPTOR_ environment variables and
// overrides. Override keys use dotted paths such as "server.addr".
func LoadFile(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(New(), "koanf"), nil); err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	loaded := ""
	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if data != nil {
			if err := k.Load(rawMap(data), nil); err != nil {
				return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
			}
			loaded = path
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	cfg.configPath = loaded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile decodes the YAML file at path. It returns nil data when the file
// does not exist.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid YAML")
	}
	return out, nil
}

// transformEnvKey maps RAPTOR_SERVER__DOCS_DIR to server.docs_dir. A double
// underscore separates sections; single underscores stay in the key.
func transformEnvKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(strings.ReplaceAll(key, "__", "."))
	return key, value
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

var validate = validator.New()

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail(err.Error()).
			Wrap(err)
	}
	if c.Publish.Prefix != "" && strings.HasPrefix(c.Publish.Prefix, "/") {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail(fmt.Sprintf("publish.prefix %q must not start with /", c.Publish.Prefix))
	}
	return nil
}

// rawMap is a koanf.Provider for already decoded data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
