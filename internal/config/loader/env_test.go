package loader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func envLoader(vars ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return vars }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := envLoader(
		"VARWIRE_HOST=lua",
		"VARWIRE_WIRE_MAX_LENGTH=64",
		"VARWIRE_WIRE_TRIM=off",
		"VARWIRE_LOG_LEVEL=debug",
		"OTHER_SETTING=1",
		"PATH=/usr/bin",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"host":    "lua",
		"wire":    map[string]any{"maxLength": int64(64), "trim": false},
		"logging": map[string]any{"level": "debug"},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := envLoader("VARWIRE_ELLIPSIS=..")
	l.AddMapping("VARWIRE_ELLIPSIS", "wire.ellipsis")

	config, _ := l.Load()
	wire, ok := config["wire"].(map[string]any)
	if !ok || wire["ellipsis"] != ".." {
		t.Errorf("Load() = %v", config)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		env      string
		expected string
	}{
		{"VARWIRE_HOST", "host"},
		{"VARWIRE_WIRE_MAX_LENGTH", "wire.maxLength"},
		{"VARWIRE_FORMAT_TOO_BIG_LEN", "format.tooBigLen"},
		{"VARWIRE_LOGGING_LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := l.envToPath(tt.env); got != tt.expected {
				t.Errorf("envToPath(%q) = %q, expected %q", tt.env, got, tt.expected)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in       string
		expected any
	}{
		{"", ""},
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"1", int64(1)},
		{"-20", int64(-20)},
		{"1.5", 1.5},
		{"lua", "lua"},
		{`["a","b"]`, []any{"a", "b"}},
		{`{"k":2}`, map[string]any{"k": float64(2)}},
		{"[broken", "[broken"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, parseValue(tt.in)); diff != "" {
				t.Errorf("parseValue(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
