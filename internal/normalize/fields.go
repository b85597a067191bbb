// Package normalize maps loosely shaped backend payloads onto the stable
// entity shapes. Normalizers never fail: malformed input degrades to an
// empty-shell record.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Items unwraps a list response. Both a bare array and {"items": [...]} are
// accepted; anything else is an empty list.
func Items(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return items
		}
	}
	return []any{}
}

// List normalizes every element of a list response with fn.
func List[T any](raw any, fn func(any) T) []T {
	items := Items(raw)
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// first returns the value of the first alias that is present and non-null.
func first(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstString is first followed by stringify, or "" when no alias is set.
func firstString(m map[string]any, keys ...string) string {
	v, ok := first(m, keys...)
	if !ok {
		return ""
	}
	return stringify(v)
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// integer extracts a whole number from a JSON number value.
func integer(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
		if f, err := x.Float64(); err == nil && f == math.Trunc(f) {
			return int(f), true
		}
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	case int:
		return x, true
	case int64:
		return int(x), true
	}
	return 0, false
}

// timestamp keeps string timestamps as-is and converts numeric ones, taken
// as epoch milliseconds, to RFC 3339 in UTC.
func timestamp(m map[string]any, keys ...string) string {
	v, ok := first(m, keys...)
	if !ok {
		return ""
	}
	if n, ok := integer(v); ok {
		return time.UnixMilli(int64(n)).UTC().Format(time.RFC3339)
	}
	return stringify(v)
}
