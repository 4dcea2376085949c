package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/varwire/internal/config/loader"
	"github.com/dshills/varwire/internal/registry"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; !ok {
		return nil, fs.ErrNotExist
	}
	return fileInfo(path), nil
}

type fileInfo string

func (f fileInfo) Name() string       { return string(f) }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

// staticEnv stands in for the environment loader.
type staticEnv map[string]any

func (e staticEnv) Load() (map[string]any, error) { return e, nil }

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}

	opts := cfg.EncoderOptions()
	if opts.MaxLength != 1000 || opts.Ellipsis != "..." || !opts.Trim {
		t.Errorf("EncoderOptions() = %+v", opts)
	}
	if cfg.Format.TooBigLen != 300 {
		t.Errorf("TooBigLen = %d, expected 300", cfg.Format.TooBigLen)
	}
}

func TestLoadWithFS_Layers(t *testing.T) {
	fsys := memFS{"/etc/varwire.toml": `
host = "lua"

[wire]
maxLength = 64
ellipsis = "~"

[logging]
level = "warn"
`}
	env := staticEnv{
		"wire":    map[string]any{"maxLength": int64(32)},
		"logging": map[string]any{"development": true},
	}

	cfg, err := LoadWithFS(fsys, "/etc/varwire.toml", env)
	if err != nil {
		t.Fatalf("LoadWithFS failed: %v", err)
	}

	want := &Config{
		Host:    "lua",
		Wire:    WireConfig{MaxLength: 32, Ellipsis: "~", Trim: true},
		Format:  FormatConfig{TooBigLen: 300},
		Logging: LoggingConfig{Level: "warn", Development: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadWithFS() mismatch (-want +got):\n%s", diff)
	}

	host, err := cfg.RegistryHost()
	if err != nil || host != registry.HostLua {
		t.Errorf("RegistryHost() = %v, %v", host, err)
	}
}

func TestLoadWithFS_YAML(t *testing.T) {
	fsys := memFS{"/varwire.yml": "format:\n  tooBigLen: 10\nwire:\n  trim: false\n"}

	cfg, err := LoadWithFS(fsys, "/varwire.yml", nil)
	if err != nil {
		t.Fatalf("LoadWithFS failed: %v", err)
	}
	if cfg.Format.TooBigLen != 10 || cfg.Wire.Trim {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadWithFS_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    memFS
		path    string
		env     staticEnv
		wantErr error
	}{
		{"missing file", memFS{}, "/nope.toml", nil, ErrFileNotFound},
		{"bad extension", memFS{"/c.ini": ""}, "/c.ini", nil, loader.ErrUnsupportedFormat},
		{"wrong type", memFS{"/c.toml": "[wire]\nmaxLength = \"big\"\n"}, "/c.toml", nil, ErrTypeMismatch},
		{"fractional int", nil, "", staticEnv{"format": map[string]any{"tooBigLen": 2.5}}, ErrTypeMismatch},
		{"zero length", memFS{"/c.toml": "[wire]\nmaxLength = 0\n"}, "/c.toml", nil, ErrValidationFailed},
		{"unknown host", nil, "", staticEnv{"host": "ruby"}, ErrValidationFailed},
		{"bad level", nil, "", staticEnv{"logging": map[string]any{"level": "loud"}}, ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env loader.Loader
			if tt.env != nil {
				env = tt.env
			}
			_, err := LoadWithFS(tt.fsys, tt.path, env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadWithFS() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWithFS_ParseError(t *testing.T) {
	fsys := memFS{"/c.toml": "host = \n"}

	_, err := LoadWithFS(fsys, "/c.toml", nil)
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "varwire.toml")
	if err := os.WriteFile(path, []byte("[wire]\nmaxLength = 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VARWIRE_MAX_LEN", "20")
	t.Setenv("VARWIRE_HOST", "go")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Wire.MaxLength != 20 || cfg.Host != "go" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApply_BoolFromInt(t *testing.T) {
	cfg := Default()
	if err := cfg.Apply(map[string]any{"wire": map[string]any{"trim": int64(0)}}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.Wire.Trim {
		t.Error("trim should be false")
	}

	err := cfg.Apply(map[string]any{"wire": map[string]any{"trim": int64(3)}})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Apply() error = %v, expected ErrTypeMismatch", err)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	l, err := cfg.NewLogger()
	if err != nil || l == nil {
		t.Fatalf("NewLogger() = %v, %v", l, err)
	}
	_ = l.Sync()
}
