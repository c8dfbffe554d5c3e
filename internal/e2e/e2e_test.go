package e2e_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/mcpsync/internal/e2e"
	"github.com/klauern/mcpsync/internal/model"
)

func TestVersionCommand(t *testing.T) {
	h := e2e.NewHarness(t)

	result := h.Run("version")

	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "mcpsync version")
}

func TestInitCreatesConfigFile(t *testing.T) {
	h := e2e.NewHarness(t)

	result := h.Run("init")

	e2e.AssertSuccess(t, result)
	configPath := filepath.Join(h.HomeDir(), "mcpsync", "config", "config.yaml")
	e2e.AssertFileExists(t, configPath)
	e2e.AssertFileContains(t, configPath, "auto_backup: true")

	// Refuses to clobber without --force.
	e2e.AssertError(t, h.Run("init"))
	e2e.AssertSuccess(t, h.Run("init", "--force"))
}

func TestAddListRemoveWorkflow(t *testing.T) {
	h := e2e.NewHarness(t)

	result := h.Run("add", "claude-code", "filesystem",
		"--command", "npx",
		"--arg", "-y", "--arg", "@modelcontextprotocol/server-filesystem",
	)
	e2e.AssertSuccess(t, result)
	e2e.AssertFileContains(t, h.ConfigPath(model.ClaudeCode), "filesystem")

	result = h.Run("list", "claude-code")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "filesystem")
	e2e.AssertOutputContains(t, result, "stdio")

	result = h.Run("remove", "claude-code", "filesystem")
	e2e.AssertSuccess(t, result)
	e2e.AssertFileNotContains(t, h.ConfigPath(model.ClaudeCode), "filesystem")
}

func TestSyncAcrossClients(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{
		"filesystem": {"command": "npx", "args": ["-y", "@modelcontextprotocol/server-filesystem", "/tmp"]},
		"api": {"type": "sse", "url": "https://example.com/sse"}
	}`)

	result := h.Run("sync", "--from", "claude-code", "--to", "cursor", "--to", "opencode")

	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "2 added")
	e2e.AssertFileContains(t, h.ConfigPath(model.Cursor), "filesystem")
	e2e.AssertFileContains(t, h.ConfigPath(model.Cursor), "https://example.com/sse")

	// OpenCode gets its own schema: local type with a command array.
	e2e.AssertFileContains(t, h.ConfigPath(model.OpenCode), `"local"`)
	e2e.AssertFileContains(t, h.ConfigPath(model.OpenCode), "@modelcontextprotocol/server-filesystem")

	// Target entries survive a list round trip.
	result = h.Run("list", "opencode")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "filesystem")
	e2e.AssertOutputContains(t, result, "api")
}

func TestSyncConflictPolicy(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{"fs": {"command": "npx", "args": ["server-fs"]}}`)
	h.SeedConfig(model.GeminiCLI, `{"mcpServers": {"fs": {"command": "uvx"}}}`)

	// Conflicts are skipped by default and reported.
	result := h.Run("sync", "--from", "claude-code", "--to", "gemini-cli")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "1 skipped")
	e2e.AssertFileContains(t, h.ConfigPath(model.GeminiCLI), "uvx")

	// Overwrite replaces the target's version.
	result = h.Run("sync", "--from", "claude-code", "--to", "gemini-cli", "--overwrite")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "1 updated")
	e2e.AssertFileContains(t, h.ConfigPath(model.GeminiCLI), "npx")
	e2e.AssertFileNotContains(t, h.ConfigPath(model.GeminiCLI), "uvx")
}

func TestSyncDryRunWritesNothing(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{"fs": {"command": "npx"}}`)

	result := h.Run("sync", "--from", "claude-code", "--to", "vscode", "--dry-run")

	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "Dry run - no changes made")
	e2e.AssertFileNotExists(t, h.ConfigPath(model.VSCode))
}

func TestSyncServerFilter(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{
		"fs": {"command": "npx"},
		"db": {"command": "uvx"}
	}`)

	result := h.Run("sync", "--from", "claude-code", "--to", "cursor", "--servers", "fs")

	e2e.AssertSuccess(t, result)
	e2e.AssertFileContains(t, h.ConfigPath(model.Cursor), "fs")
	e2e.AssertFileNotContains(t, h.ConfigPath(model.Cursor), "db")
}

func TestSyncNoMatchingServers(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{"fs": {"command": "npx"}}`)

	result := h.Run("sync", "--from", "claude-code", "--to", "cursor", "--servers", "ghost")

	e2e.AssertError(t, result)
	e2e.AssertErrorContains(t, result, "ghost")
	e2e.AssertFileNotExists(t, h.ConfigPath(model.Cursor))
}

func TestSyncFailedTargetExitCode(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{"fs": {"command": "npx"}}`)
	// A directory at the target's config path makes its load fail.
	if err := os.MkdirAll(h.ConfigPath(model.Cursor), 0o750); err != nil {
		t.Fatalf("failed to create blocking directory: %v", err)
	}

	result := h.Run("sync", "--from", "claude-code", "--to", "cursor", "--to", "opencode")

	e2e.AssertExitCode(t, result, 1)
	e2e.AssertOutputContains(t, result, "FAILED")
	// The healthy target was still synced.
	e2e.AssertFileContains(t, h.ConfigPath(model.OpenCode), "fs")
}

func TestBackupWorkflow(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{"fs": {"command": "npx"}}`)

	result := h.Run("backup", "create", "claude-code", "--description", "before edits")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "created backup")

	fields := strings.Fields(result.Stdout)
	id := fields[len(fields)-1]

	result = h.Run("backup", "list")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, id)
	e2e.AssertOutputContains(t, result, "before edits")

	e2e.AssertSuccess(t, h.Run("backup", "verify", id))

	// Mutate the config, then roll it back.
	e2e.AssertSuccess(t, h.Run("add", "claude-code", "extra", "--command", "uvx"))
	e2e.AssertFileContains(t, h.ConfigPath(model.ClaudeCode), "extra")

	e2e.AssertSuccess(t, h.Run("backup", "restore", id))
	e2e.AssertFileNotContains(t, h.ConfigPath(model.ClaudeCode), "extra")

	e2e.AssertSuccess(t, h.Run("backup", "delete", id))
	result = h.Run("backup", "list")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "no backups")
}

func TestAutoBackupOnSync(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{"fs": {"command": "npx"}}`)
	h.SeedConfig(model.Cursor, `{"servers": [], "version": "1.0"}`)

	e2e.AssertSuccess(t, h.Run("sync", "--from", "claude-code", "--to", "cursor"))

	result := h.Run("backup", "list", "cursor")
	e2e.AssertSuccess(t, result)
	e2e.AssertOutputContains(t, result, "pre-sync")
}

func TestStatusShowsClients(t *testing.T) {
	h := e2e.NewHarness(t)
	h.SeedClaudeCode(`{"fs": {"command": "npx"}}`)

	result := h.Run("status")

	e2e.AssertSuccess(t, result)
	for _, client := range model.AllClients() {
		e2e.AssertOutputContains(t, result, string(client))
	}
	e2e.AssertOutputContains(t, result, "(1 servers)")
}

func TestUnknownClientRejected(t *testing.T) {
	h := e2e.NewHarness(t)

	for _, args := range [][]string{
		{"list", "zed"},
		{"add", "zed", "fs", "--command", "npx"},
		{"remove", "zed", "fs"},
		{"sync", "--from", "zed", "--to", "cursor"},
	} {
		result := h.Run(args...)
		e2e.AssertError(t, result)
		e2e.AssertErrorContains(t, result, "zed")
	}
}
