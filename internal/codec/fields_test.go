package codec

import (
	"reflect"
	"testing"

	"github.com/klauern/mcpsync/internal/model"
)

func TestTolerantAccessors(t *testing.T) {
	entry := map[string]any{
		"command": "npx",
		"args":    []any{"-y", "server", 42},
		"env":     map[string]any{"KEY": "value", "NUM": 7},
		"timeout": float64(5000),
		"trust":   true,
		"badStr":  123,
	}

	if got := String(entry, "command"); got != "npx" {
		t.Errorf("String(command) = %q, want npx", got)
	}
	if got := String(entry, "badStr"); got != "" {
		t.Errorf("String(badStr) = %q, want empty", got)
	}
	if got := String(entry, "absent"); got != "" {
		t.Errorf("String(absent) = %q, want empty", got)
	}

	if got := Bool(entry, "trust", false); !got {
		t.Error("Bool(trust) = false, want true")
	}
	if got := Bool(entry, "absent", true); !got {
		t.Error("Bool(absent, true) = false, want fallback true")
	}

	if got := Int(entry, "timeout"); got != 5000 {
		t.Errorf("Int(timeout) = %d, want 5000", got)
	}
	if got := Int(entry, "command"); got != 0 {
		t.Errorf("Int(command) = %d, want 0", got)
	}

	if got := StringSlice(entry, "args"); !reflect.DeepEqual(got, []string{"-y", "server"}) {
		t.Errorf("StringSlice(args) = %v, want non-string elements skipped", got)
	}
	if got := StringSlice(entry, "command"); got != nil {
		t.Errorf("StringSlice(command) = %v, want nil", got)
	}

	if got := StringMap(entry, "env"); !reflect.DeepEqual(got, map[string]string{"KEY": "value"}) {
		t.Errorf("StringMap(env) = %v, want non-string values skipped", got)
	}
}

func TestExtra(t *testing.T) {
	entry := map[string]any{
		"command": "npx",
		"args":    []any{"-y"},
		"icon":    "🔧",
		"nested":  map[string]any{"a": 1},
	}

	extra := Extra(entry, "command", "args")
	want := map[string]any{"icon": "🔧", "nested": map[string]any{"a": 1}}
	if !reflect.DeepEqual(extra, want) {
		t.Errorf("Extra = %v, want %v", extra, want)
	}

	if got := Extra(map[string]any{"command": "x"}, "command"); got != nil {
		t.Errorf("Extra with nothing left = %v, want nil", got)
	}
}

func TestMergeExtra(t *testing.T) {
	entry := map[string]any{"command": "new"}
	MergeExtra(entry, map[string]any{"command": "stale", "icon": "🔧"})

	if entry["command"] != "new" {
		t.Errorf("command = %v, canonical key must not be overwritten", entry["command"])
	}
	if entry["icon"] != "🔧" {
		t.Errorf("icon = %v, want carried through", entry["icon"])
	}
}

func TestParseServerType(t *testing.T) {
	tests := map[string]model.ServerType{
		"":      model.ServerTypeStdio,
		"stdio": model.ServerTypeStdio,
		"sse":   model.ServerTypeSSE,
		"http":  model.ServerTypeHTTP,
		"weird": model.ServerTypeStdio,
	}
	for in, want := range tests {
		if got := ParseServerType(in); got != want {
			t.Errorf("ParseServerType(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEnvMapAndArgsSlice(t *testing.T) {
	if got := EnvMap(nil); got != nil {
		t.Errorf("EnvMap(nil) = %v, want nil", got)
	}
	if got := EnvMap(map[string]string{"A": "1"}); !reflect.DeepEqual(got, map[string]any{"A": "1"}) {
		t.Errorf("EnvMap = %v", got)
	}
	if got := ArgsSlice([]string{"a", "b"}); !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("ArgsSlice = %v", got)
	}
	if got := ArgsSlice(nil); len(got) != 0 {
		t.Errorf("ArgsSlice(nil) = %v, want empty", got)
	}
}
