package codec

import (
	"encoding/json"

	"github.com/klauern/mcpsync/internal/model"
)

// Tolerant accessors for generic JSON entry objects. Per-entry fields with an
// unexpected type are treated as absent; only the structural server section
// of a file is held to strict typing (SchemaError).

// String returns the string value at key, or "" when absent or mistyped.
func String(entry map[string]any, key string) string {
	if v, ok := entry[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the bool value at key, or fallback when absent or mistyped.
func Bool(entry map[string]any, key string, fallback bool) bool {
	if v, ok := entry[key].(bool); ok {
		return v
	}
	return fallback
}

// Int returns the integer value at key, or 0 when absent or mistyped.
// JSON numbers decode as float64; json.Number is handled for completeness.
func Int(entry map[string]any, key string) int {
	switch v := entry[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case int:
		return v
	}
	return 0
}

// StringSlice returns the string array at key, skipping non-string elements.
func StringSlice(entry map[string]any, key string) []string {
	raw, ok := entry[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringMap returns the string-valued object at key, skipping non-string values.
func StringMap(entry map[string]any, key string) map[string]string {
	raw, ok := entry[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Extra collects every key of entry not named in consumed. It preserves
// client-specific fields the canonical model does not carry.
func Extra(entry map[string]any, consumed ...string) map[string]any {
	skip := make(map[string]bool, len(consumed))
	for _, k := range consumed {
		skip[k] = true
	}

	var out map[string]any
	for k, v := range entry {
		if skip[k] {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

// MergeExtra copies a server's extra fields into entry without overwriting
// canonical keys already present.
func MergeExtra(entry map[string]any, extra map[string]any) {
	for k, v := range extra {
		if _, ok := entry[k]; !ok {
			entry[k] = v
		}
	}
}

// ParseServerType maps a client "type" string onto the canonical server type,
// defaulting to stdio for unknown or absent values.
func ParseServerType(s string) model.ServerType {
	switch s {
	case "sse":
		return model.ServerTypeSSE
	case "http":
		return model.ServerTypeHTTP
	default:
		return model.ServerTypeStdio
	}
}

// EnvMap converts env to a generic map for JSON serialization, returning
// nil for empty input so the key is omitted entirely.
func EnvMap(env map[string]string) map[string]any {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]any, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

// ArgsSlice converts args to a generic slice for JSON serialization.
func ArgsSlice(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
