package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-trip-planner/internal/config"
)

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != config.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.API.BaseURL, config.DefaultBaseURL)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected template at %s: %v", path, err)
	}

	// The written template must parse back to the defaults.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := config.Parse(data)
	if err != nil {
		t.Fatalf("Parse(template): %v", err)
	}
	if parsed.API.EnableBackendCalls {
		t.Error("template enables backend calls, want safe mode")
	}
	if parsed.Stores.PageLimit != config.DefaultPageLimit {
		t.Errorf("PageLimit = %d, want %d", parsed.Stores.PageLimit, config.DefaultPageLimit)
	}
}

func TestParsePartialFillsDefaults(t *testing.T) {
	data := []byte(`// comment line
{
  "api": {
    // inline documentation
    "base_url": "https://api.example.com/",
    "enable_backend_calls": true
  }
}`)
	cfg, err := config.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if !cfg.API.EnableBackendCalls {
		t.Error("EnableBackendCalls = false, want true")
	}
	if cfg.API.Timeout() != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.API.Timeout())
	}
	if cfg.Stores.ReloadThrottle() != 500*time.Millisecond {
		t.Errorf("ReloadThrottle = %v, want 500ms", cfg.Stores.ReloadThrottle())
	}
	if cfg.FeatureFlags == nil {
		t.Error("FeatureFlags is nil, want empty set")
	}
}

func TestParseInvalidJSON(t *testing.T) {
	cfg, err := config.Parse([]byte("{bad json"))
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if cfg.API.BaseURL != config.DefaultBaseURL {
		t.Errorf("fallback BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvAPIBase:      "http://api.local:9000/",
		config.EnvEnableCalls:  "YES",
		config.EnvFeatureFlags: `{"calendar":true}`,
		config.EnvLogLevel:     "   ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	config.ApplyEnv(&cfg, lookup)

	if cfg.API.BaseURL != "http://api.local:9000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if !cfg.API.EnableBackendCalls {
		t.Error("EnableBackendCalls = false, want true")
	}
	if !cfg.FeatureFlags.Enabled("calendar") {
		t.Error("calendar flag not enabled")
	}
	if cfg.LogLevel != config.DefaultLogLevel {
		t.Errorf("blank env overrode LogLevel: %q", cfg.LogLevel)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{" Yes ", true},
		{"false", false},
		{"0", false},
		{"on", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := config.ParseBool(tt.in); got != tt.want {
			t.Errorf("ParseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		key  string
		want bool
		size int
	}{
		{"object", `{"a":true,"b":false}`, "a", true, 2},
		{"number", `{"a":1}`, "a", true, 1},
		{"string", `{"a":"yes"}`, "a", true, 1},
		{"invalid", `{nope`, "a", false, 0},
		{"array", `[1,2]`, "a", false, 0},
		{"null", `null`, "a", false, 0},
		{"empty", ``, "a", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := config.ParseFlags(tt.raw)
			if f == nil {
				t.Fatal("ParseFlags returned nil")
			}
			if got := f.Enabled(tt.key); got != tt.want {
				t.Errorf("Enabled(%q) = %v, want %v", tt.key, got, tt.want)
			}
			if len(f) != tt.size {
				t.Errorf("len = %d, want %d", len(f), tt.size)
			}
		})
	}
}
