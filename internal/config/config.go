package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/varwire/internal/config/loader"
	"github.com/dshills/varwire/internal/format"
	"github.com/dshills/varwire/internal/logging"
	"github.com/dshills/varwire/internal/registry"
	"github.com/dshills/varwire/internal/wire"
)

// Config holds all varwire settings.
type Config struct {
	// Host selects the resolver table: "go", "lua" or "auto".
	Host string

	Wire    WireConfig
	Format  FormatConfig
	Logging LoggingConfig
}

// WireConfig controls record encoding.
type WireConfig struct {
	MaxLength int
	Ellipsis  string
	Trim      bool
}

// FormatConfig controls value rendering.
type FormatConfig struct {
	TooBigLen int
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string
	Development bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Host: "auto",
		Wire: WireConfig{
			MaxLength: wire.DefaultMaxLength,
			Ellipsis:  wire.DefaultEllipsis,
			Trim:      true,
		},
		Format: FormatConfig{
			TooBigLen: format.DefaultTooBigLen,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration file at path (skipped when empty) and the
// VARWIRE_* environment on top of the defaults.
func Load(path string) (*Config, error) {
	return LoadWithFS(loader.DefaultFS(), path, loader.NewEnvLoader(loader.DefaultEnvPrefix))
}

// LoadWithFS is Load with an explicit file system and environment loader.
// A nil env skips the environment layer.
func LoadWithFS(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	var merged map[string]any

	if path != "" {
		if _, err := fsys.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, err
		}
		fl, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		data, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if env != nil {
		data, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg := Default()
	if err := cfg.Apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overrides settings with the values in data. Unknown keys are
// ignored.
func (c *Config) Apply(data map[string]any) error {
	s := settings{data: data}
	s.getString("host", &c.Host)
	s.getInt("wire.maxLength", &c.Wire.MaxLength)
	s.getString("wire.ellipsis", &c.Wire.Ellipsis)
	s.getBool("wire.trim", &c.Wire.Trim)
	s.getInt("format.tooBigLen", &c.Format.TooBigLen)
	s.getString("logging.level", &c.Logging.Level)
	s.getBool("logging.development", &c.Logging.Development)
	return s.err
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Wire.MaxLength <= 0 {
		return fmt.Errorf("%w: wire.maxLength must be positive, got %d", ErrValidationFailed, c.Wire.MaxLength)
	}
	if c.Format.TooBigLen <= 0 {
		return fmt.Errorf("%w: format.tooBigLen must be positive, got %d", ErrValidationFailed, c.Format.TooBigLen)
	}
	if _, err := registry.ParseHost(c.Host); err != nil {
		return fmt.Errorf("%w: host: %v", ErrValidationFailed, err)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrValidationFailed, err)
	}
	return nil
}

// EncoderOptions returns the wire encoder options.
func (c *Config) EncoderOptions() wire.Options {
	return wire.Options{
		MaxLength: c.Wire.MaxLength,
		Ellipsis:  c.Wire.Ellipsis,
		Trim:      c.Wire.Trim,
	}
}

// FormatterOptions returns the value formatter options.
func (c *Config) FormatterOptions() []format.Option {
	return []format.Option{format.WithTooBigLen(c.Format.TooBigLen)}
}

// RegistryHost resolves the configured host.
func (c *Config) RegistryHost() (registry.Host, error) {
	return registry.ParseHost(c.Host)
}

// NewLogger builds the zap logger described by the logging settings.
func (c *Config) NewLogger() (*zap.Logger, error) {
	return logging.New(c.Logging.Level, c.Logging.Development)
}

// settings reads typed values from a nested map, keeping the first error.
type settings struct {
	data map[string]any
	err  error
}

func (s *settings) lookup(path string) (any, bool) {
	cur := any(s.data)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func (s *settings) mismatch(path string, v any, want string) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: %s: expected %s, got %T", ErrTypeMismatch, path, want, v)
	}
}

func (s *settings) getString(path string, dst *string) {
	v, ok := s.lookup(path)
	if !ok {
		return
	}
	str, ok := v.(string)
	if !ok {
		s.mismatch(path, v, "string")
		return
	}
	*dst = str
}

func (s *settings) getBool(path string, dst *bool) {
	v, ok := s.lookup(path)
	if !ok {
		return
	}
	switch b := v.(type) {
	case bool:
		*dst = b
	case int64:
		if b == 0 || b == 1 {
			*dst = b == 1
			return
		}
		s.mismatch(path, v, "bool")
	default:
		s.mismatch(path, v, "bool")
	}
}

func (s *settings) getInt(path string, dst *int) {
	v, ok := s.lookup(path)
	if !ok {
		return
	}
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case uint64:
		*dst = int(n)
	case float64:
		if n != math.Trunc(n) {
			s.mismatch(path, v, "integer")
			return
		}
		*dst = int(n)
	default:
		s.mismatch(path, v, "integer")
	}
}
