package sync

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauern/mcpsync/internal/backup"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/registry"
)

// testEnv wires an engine to per-client config paths inside a temp dir.
type testEnv struct {
	engine *Engine
	store  *backup.Store
	paths  map[model.Client]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	paths := make(map[model.Client]string, len(model.AllClients()))
	overrides := make(map[model.Client]string, len(model.AllClients()))
	for _, client := range model.AllClients() {
		p := filepath.Join(dir, string(client)+".json")
		paths[client] = p
		overrides[client] = p
	}

	store := backup.NewStoreAt(filepath.Join(dir, "backups"), filepath.Join(dir, "meta"))
	return &testEnv{
		engine: New(registry.New(overrides), store),
		store:  store,
		paths:  paths,
	}
}

func (env *testEnv) write(t *testing.T, client model.Client, content string) {
	t.Helper()
	if err := os.WriteFile(env.paths[client], []byte(content), 0o644); err != nil {
		t.Fatalf("write %s config: %v", client, err)
	}
}

func (env *testEnv) load(t *testing.T, client model.Client) model.ServerMap {
	t.Helper()
	c, err := env.engine.registry.Resolve(client)
	if err != nil {
		t.Fatalf("resolve %s: %v", client, err)
	}
	servers, err := c.Load()
	if err != nil {
		t.Fatalf("load %s: %v", client, err)
	}
	return servers
}

func TestSyncAddsNewServers(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"fs": {"command": "npx", "args": ["-y", "server-fs"]}}}`)

	report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.ClaudeDesktop}, DefaultOptions())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !report.Success() {
		t.Fatalf("report = %s", report.Summary())
	}

	tr := report.Targets[0]
	if !reflect.DeepEqual(tr.Added(), []string{"fs"}) {
		t.Errorf("added = %v", tr.Added())
	}

	got := env.load(t, model.ClaudeDesktop)
	if got["fs"].Command != "npx" {
		t.Errorf("target config = %+v", got)
	}
}

func TestSyncIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"fs": {"command": "npx"}, "api": {"type": "sse", "url": "https://x.dev/sse"}}}`)

	opts := DefaultOptions()
	opts.Overwrite = true

	if _, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.VSCode}, opts); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	after1 := env.load(t, model.VSCode)

	report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.VSCode}, opts)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	after2 := env.load(t, model.VSCode)

	if len(after1) != len(after2) {
		t.Fatalf("mapping changed size: %d vs %d", len(after1), len(after2))
	}
	for name := range after1 {
		if !after1[name].Equal(after2[name]) {
			t.Errorf("server %q changed between identical runs", name)
		}
	}
	if got := report.Targets[0].Unchanged(); len(got) != 2 {
		t.Errorf("second run should classify everything unchanged, got %v", report.Targets[0].Servers)
	}
}

func TestSyncConflictPolicy(t *testing.T) {
	sourceCfg := `{"mcpServers": {"fs": {"command": "npx", "args": ["v2"]}}}`
	targetCfg := `{"mcpServers": {"fs": {"command": "npx", "args": ["v1"]}}}`

	t.Run("without overwrite skips and leaves target unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		env.write(t, model.ClaudeCode, sourceCfg)
		env.write(t, model.ClaudeDesktop, targetCfg)

		report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.ClaudeDesktop}, DefaultOptions())
		if err != nil {
			t.Fatalf("sync: %v", err)
		}
		tr := report.Targets[0]
		if !reflect.DeepEqual(tr.Skipped(), []string{"fs"}) {
			t.Errorf("skipped = %v", tr.Skipped())
		}
		if tr.Servers[0].Reason == "" {
			t.Error("skip must carry a reason")
		}

		got := env.load(t, model.ClaudeDesktop)
		if !reflect.DeepEqual(got["fs"].Args, []string{"v1"}) {
			t.Errorf("target modified without overwrite: %v", got["fs"].Args)
		}
	})

	t.Run("with overwrite updates target", func(t *testing.T) {
		env := newTestEnv(t)
		env.write(t, model.ClaudeCode, sourceCfg)
		env.write(t, model.ClaudeDesktop, targetCfg)

		opts := DefaultOptions()
		opts.Overwrite = true
		report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.ClaudeDesktop}, opts)
		if err != nil {
			t.Fatalf("sync: %v", err)
		}
		if !reflect.DeepEqual(report.Targets[0].Updated(), []string{"fs"}) {
			t.Errorf("updated = %v", report.Targets[0].Updated())
		}

		got := env.load(t, model.ClaudeDesktop)
		if !reflect.DeepEqual(got["fs"].Args, []string{"v2"}) {
			t.Errorf("target args = %v, want v2", got["fs"].Args)
		}
	})
}

func TestSyncNameFilter(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"a": {"command": "cmd-a"}, "b": {"command": "cmd-b"}}}`)

	opts := DefaultOptions()
	opts.Servers = []string{"a"}
	report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.GeminiCLI}, opts)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !reflect.DeepEqual(report.Targets[0].Added(), []string{"a"}) {
		t.Errorf("added = %v", report.Targets[0].Added())
	}

	got := env.load(t, model.GeminiCLI)
	if _, ok := got["b"]; ok {
		t.Error("filter must keep b out of the target")
	}
}

func TestSyncEmptyFilterMatch(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"a": {"command": "cmd-a"}}}`)

	opts := DefaultOptions()
	opts.Servers = []string{"nonexistent"}
	_, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.Cursor}, opts)

	var noMatch *NoMatchingServersError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchingServersError, got %v", err)
	}
	if _, statErr := os.Stat(env.paths[model.Cursor]); !os.IsNotExist(statErr) {
		t.Error("no writes may happen when the filter selects nothing")
	}
}

func TestSyncPartialFailureIsolation(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"fs": {"command": "npx"}}}`)

	// Make one target unreadable by putting a directory where its config
	// file should be.
	if err := os.Mkdir(env.paths[model.VSCode], 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	report, err := env.engine.Sync(model.ClaudeCode,
		[]model.Client{model.VSCode, model.ClaudeDesktop}, DefaultOptions())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	if report.Success() {
		t.Error("report should not be a full success")
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Client != model.VSCode {
		t.Fatalf("failed = %v", failed)
	}

	// The healthy target got its write in full.
	got := env.load(t, model.ClaudeDesktop)
	if got["fs"].Command != "npx" {
		t.Errorf("healthy target missed the sync: %+v", got)
	}
}

func TestSyncDryRun(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"fs": {"command": "npx"}}}`)

	opts := DefaultOptions()
	opts.DryRun = true
	report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.OpenCode}, opts)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !report.DryRun {
		t.Error("report must be marked dry-run")
	}
	if !reflect.DeepEqual(report.Targets[0].Added(), []string{"fs"}) {
		t.Errorf("added = %v", report.Targets[0].Added())
	}
	if _, statErr := os.Stat(env.paths[model.OpenCode]); !os.IsNotExist(statErr) {
		t.Error("dry run must not write")
	}

	backups, err := env.store.List("")
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 0 {
		t.Error("dry run must not take backups")
	}
}

func TestSyncBackupBeforeWrite(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"fs": {"command": "npx"}}}`)
	env.write(t, model.GeminiCLI, `{"mcpServers": {}, "theme": "GitHub"}`)

	if _, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.GeminiCLI}, DefaultOptions()); err != nil {
		t.Fatalf("sync: %v", err)
	}

	backups, err := env.store.List(model.GeminiCLI)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}

	// The snapshot holds the pre-sync content.
	data, err := os.ReadFile(backups[0].BackupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != `{"mcpServers": {}, "theme": "GitHub"}` {
		t.Errorf("backup content = %s", data)
	}
}

func TestSyncNoChangesSkipsWrite(t *testing.T) {
	env := newTestEnv(t)
	cfg := `{"mcpServers": {"fs": {"command": "npx"}}}`
	env.write(t, model.ClaudeCode, cfg)
	env.write(t, model.ClaudeDesktop, cfg)

	report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.ClaudeDesktop}, DefaultOptions())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := report.Targets[0].Unchanged(); !reflect.DeepEqual(got, []string{"fs"}) {
		t.Errorf("unchanged = %v", got)
	}

	after, err := os.ReadFile(env.paths[model.ClaudeDesktop])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(after) != cfg {
		t.Error("an all-unchanged sync must not rewrite the file")
	}
}

func TestSyncSourceUnavailable(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.Cursor}, DefaultOptions())

	var unavailable *SourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SourceUnavailableError, got %v", err)
	}
	if unavailable.Client != model.ClaudeCode {
		t.Errorf("client = %v", unavailable.Client)
	}
}

func TestSyncUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode, `{"mcpServers": {"fs": {"command": "npx"}}}`)

	_, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.Client("zed")}, DefaultOptions())
	var unknown *model.UnknownClientError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownClientError, got %v", err)
	}
}

func TestSyncStripsSourceExtras(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode,
		`{"mcpServers": {"fs": {"command": "npx", "claudeOnlyMeta": {"x": 1}}}}`)

	report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.OpenCode}, DefaultOptions())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !report.Success() {
		t.Fatalf("report = %s", report.Summary())
	}

	// The source client's passthrough data must not land in the target file.
	data, err := os.ReadFile(env.paths[model.OpenCode])
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if strings.Contains(string(data), "claudeOnlyMeta") {
		t.Errorf("source extra leaked into target config:\n%s", data)
	}

	got := env.load(t, model.OpenCode)
	if len(got["fs"].Extra) != 0 {
		t.Errorf("target entry carries foreign extras: %v", got["fs"].Extra)
	}
}

func TestSyncOverwriteKeepsTargetExtras(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeCode,
		`{"mcpServers": {"fs": {"command": "npx", "args": ["v2"], "sourceNote": "claude"}}}`)
	env.write(t, model.GeminiCLI,
		`{"mcpServers": {"fs": {"command": "npx", "args": ["v1"], "includeTools": ["read"]}}}`)

	opts := DefaultOptions()
	opts.Overwrite = true
	report, err := env.engine.Sync(model.ClaudeCode, []model.Client{model.GeminiCLI}, opts)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !reflect.DeepEqual(report.Targets[0].Updated(), []string{"fs"}) {
		t.Errorf("updated = %v", report.Targets[0].Updated())
	}

	data, err := os.ReadFile(env.paths[model.GeminiCLI])
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if !strings.Contains(string(data), "includeTools") {
		t.Errorf("overwrite dropped the target's own extra:\n%s", data)
	}
	if strings.Contains(string(data), "sourceNote") {
		t.Errorf("source extra leaked into target config:\n%s", data)
	}

	got := env.load(t, model.GeminiCLI)
	if !reflect.DeepEqual(got["fs"].Args, []string{"v2"}) {
		t.Errorf("canonical fields not updated: %v", got["fs"].Args)
	}
}

// The claude-desktop to opencode translation exercises two codecs with
// very different schemas end to end.
func TestSyncClaudeDesktopToOpenCode(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, model.ClaudeDesktop,
		`{"mcpServers": {"filesystem": {"command": "npx", "args": ["-y", "@modelcontextprotocol/server-filesystem", "/tmp"]}}}`)

	report, err := env.engine.Sync(model.ClaudeDesktop, []model.Client{model.OpenCode}, DefaultOptions())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !report.Success() {
		t.Fatalf("report = %s", report.Summary())
	}

	data, err := os.ReadFile(env.paths[model.OpenCode])
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	entry := root["mcp"].(map[string]any)["filesystem"].(map[string]any)
	if entry["type"] != "local" || entry["enabled"] != true {
		t.Errorf("entry = %v", entry)
	}
	wantCommand := []any{"npx", "-y", "@modelcontextprotocol/server-filesystem", "/tmp"}
	if !reflect.DeepEqual(entry["command"], wantCommand) {
		t.Errorf("command = %v, want %v", entry["command"], wantCommand)
	}
}
