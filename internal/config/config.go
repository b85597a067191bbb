package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

// Config is the root configuration for ttp, stored in ~/.ttp/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	API          APIConfig      `json:"api"`
	FeatureFlags Flags          `json:"feature_flags"`
	Stores       StoresConfig   `json:"stores"`
	Calendar     CalendarConfig `json:"calendar"`
	LogLevel     string         `json:"log_level"`
}

// APIConfig controls the transport gate.
type APIConfig struct {
	// BaseURL is the API origin, e.g. "http://localhost:3001".
	BaseURL string `json:"base_url"`
	// EnableBackendCalls turns real HTTP calls on. When false every call is
	// answered locally and the stores run on sample data.
	EnableBackendCalls bool `json:"enable_backend_calls"`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
	// MaxRequestsPerSecond limits outgoing calls; 0 disables the limiter.
	MaxRequestsPerSecond float64 `json:"max_requests_per_second"`
	// AccessToken is sent as a bearer token when set.
	AccessToken string `json:"access_token"`
	// OAuth enables the client-credentials flow when TokenURL and ClientID are set.
	OAuth OAuthConfig `json:"oauth"`
}

// OAuthConfig holds client-credentials settings for the API.
type OAuthConfig struct {
	TokenURL     string   `json:"token_url"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
}

// StoresConfig tunes the resource stores.
type StoresConfig struct {
	// PageLimit is the default list page size.
	PageLimit int `json:"page_limit"`
	// ReloadThrottleMillis is the minimum gap since the last successful
	// reload before a failed update triggers another reload.
	ReloadThrottleMillis int `json:"reload_throttle_ms"`
}

// CalendarConfig holds calendar view settings.
type CalendarConfig struct {
	// Timezone is the IANA zone used to reduce timestamps to dates. Empty = local.
	Timezone string `json:"timezone"`
}

const (
	DefaultBaseURL        = "http://localhost:3001"
	DefaultTimeoutSeconds = 15
	DefaultPageLimit      = 50
	DefaultReloadThrottle = 500
	DefaultLogLevel       = "info"
)

// Environment variables resolved once at startup. They take precedence over
// the config file.
const (
	EnvAPIBase      = "TTP_API_BASE"
	EnvEnableCalls  = "TTP_ENABLE_BACKEND_CALLS"
	EnvFeatureFlags = "TTP_FEATURE_FLAGS"
	EnvLogLevel     = "TTP_LOG_LEVEL"
)

// Default returns a Config pre-filled with sensible defaults. Backend calls
// are disabled so the tool works with no backend configured.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		FeatureFlags: Flags{},
		Stores: StoresConfig{
			PageLimit:            DefaultPageLimit,
			ReloadThrottleMillis: DefaultReloadThrottle,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Timeout returns the request timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReloadThrottle returns the reload throttle as a duration.
func (c StoresConfig) ReloadThrottle() time.Duration {
	return time.Duration(c.ReloadThrottleMillis) * time.Millisecond
}

// Location resolves the calendar timezone, falling back to time.Local for
// empty or unknown names.
func (c CalendarConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// ttp configuration – ~/.ttp/config.json
//
// All settings are optional. With the defaults below ttp never talks to a
// backend and works on built-in sample trips.
{
  // ── Travel planner API ───────────────────────────────────────────────────
  "api": {
    // API origin. Override with TTP_API_BASE.
    "base_url": "http://localhost:3001",

    // Set to true to perform real HTTP calls. Override with
    // TTP_ENABLE_BACKEND_CALLS=true|1|yes.
    "enable_backend_calls": false,

    // Per-request timeout in seconds.
    "timeout_seconds": 15,

    // Client-side request limit; 0 means unlimited.
    "max_requests_per_second": 0,

    // Optional static bearer token.
    "access_token": "",

    // Optional OAuth2 client-credentials flow (used when token_url and
    // client_id are set).
    "oauth": {
      "token_url": "",
      "client_id": "",
      "client_secret": "",
      "scopes": []
    }
  },

  // Free-form feature flags. Override with TTP_FEATURE_FLAGS='{"x":true}'.
  "feature_flags": {},

  // ── Stores ───────────────────────────────────────────────────────────────
  "stores": {
    // Default list page size.
    "page_limit": 50,

    // Minimum milliseconds since the last successful reload before a failed
    // update triggers a refetch.
    "reload_throttle_ms": 500
  },

  // ── Calendar ─────────────────────────────────────────────────────────────
  "calendar": {
    // IANA timezone used to bucket timestamps by day. Empty = local time.
    "timezone": ""
  },

  // debug, info or error. Override with TTP_LOG_LEVEL.
  "log_level": "info"
}
`

// DefaultPath returns the path to ~/.ttp/config.json.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttp", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config file at path (~ is expanded; empty means
// DefaultPath), creating it with annotated defaults on first run, then
// applies .env and environment overrides. Lines starting with // are treated
// as comments and stripped before JSON parsing.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return cfg, err
	}
	// A missing .env is the normal case.
	_ = godotenv.Load()
	ApplyEnv(&cfg, os.LookupEnv)
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Default(), fmt.Errorf("expanding config path %s: %w", path, err)
	}
	path = expanded

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a commented JSON config and fills zero-value fields with
// built-in defaults so callers always get a usable Config even if the user
// only partially fills in the file.
func Parse(data []byte) (Config, error) {
	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config: %w\nTip: delete the file to regenerate defaults", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.API.MaxRequestsPerSecond < 0 {
		c.API.MaxRequestsPerSecond = 0
	}
	if c.FeatureFlags == nil {
		c.FeatureFlags = Flags{}
	}
	if c.Stores.PageLimit <= 0 {
		c.Stores.PageLimit = DefaultPageLimit
	}
	if c.Stores.ReloadThrottleMillis <= 0 {
		c.Stores.ReloadThrottleMillis = DefaultReloadThrottle
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// ApplyEnv overlays non-empty environment values onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	}
	if v, ok := get(EnvAPIBase); ok {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := get(EnvEnableCalls); ok {
		cfg.API.EnableBackendCalls = ParseBool(v)
	}
	if v, ok := get(EnvFeatureFlags); ok {
		cfg.FeatureFlags = ParseFlags(v)
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
}

// ParseBool accepts true, 1 and yes (case-insensitive); anything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
