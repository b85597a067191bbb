package config

import (
	"encoding/json"
	"strings"
)

// Flags is the free-form feature flag set. Values keep their JSON types.
type Flags map[string]any

// ParseFlags decodes a JSON object. Invalid JSON or a non-object value
// yields an empty set rather than an error.
func ParseFlags(raw string) Flags {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Flags{}
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Flags{}
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return Flags{}
	}
	return Flags(obj)
}

// Enabled reports whether name is set to a truthy value: true, a non-zero
// number, or one of the strings accepted by ParseBool.
func (f Flags) Enabled(name string) bool {
	switch v := f[name].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return ParseBool(v)
	default:
		return false
	}
}

// UnmarshalJSON tolerates a non-object "feature_flags" value in the config
// file the same way ParseFlags does.
func (f *Flags) UnmarshalJSON(data []byte) error {
	*f = ParseFlags(string(data))
	return nil
}
