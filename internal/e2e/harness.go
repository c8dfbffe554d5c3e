// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes a harness for running CLI commands, fixture management, and
// utilities for setting up isolated test environments.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/mcpsync/internal/cli"
	"github.com/klauern/mcpsync/internal/model"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness runs mcpsync commands in an isolated environment. Every client
// config path, the app config dir, and the backup store all live under a
// per-test temp directory.
type Harness struct {
	t       *testing.T
	homeDir string
	paths   map[model.Client]string
}

// NewHarness creates a new E2E test harness rooted at a fresh temp dir.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	homeDir := t.TempDir()
	h := &Harness{
		t:       t,
		homeDir: homeDir,
		paths: map[model.Client]string{
			model.ClaudeCode:    filepath.Join(homeDir, ".claude.json"),
			model.ClaudeDesktop: filepath.Join(homeDir, "Claude", "claude_desktop_config.json"),
			model.Cursor:        filepath.Join(homeDir, ".cursor", "mcp.json"),
			model.VSCode:        filepath.Join(homeDir, "Code", "User", "mcp.json"),
			model.GeminiCLI:     filepath.Join(homeDir, ".gemini", "settings.json"),
			model.OpenCode:      filepath.Join(homeDir, "opencode", "opencode.json"),
		},
	}

	h.SetEnv("HOME", homeDir)
	h.SetEnv("MCPSYNC_CONFIG_DIR", filepath.Join(homeDir, "mcpsync", "config"))
	h.SetEnv("MCPSYNC_DATA_DIR", filepath.Join(homeDir, "mcpsync", "data"))
	h.SetEnv("MCPSYNC_CLAUDE_CODE_PATH", h.paths[model.ClaudeCode])
	h.SetEnv("MCPSYNC_CLAUDE_DESKTOP_PATH", h.paths[model.ClaudeDesktop])
	h.SetEnv("MCPSYNC_CURSOR_PATH", h.paths[model.Cursor])
	h.SetEnv("MCPSYNC_VSCODE_PATH", h.paths[model.VSCode])
	h.SetEnv("MCPSYNC_GEMINI_CLI_PATH", h.paths[model.GeminiCLI])
	h.SetEnv("MCPSYNC_OPENCODE_PATH", h.paths[model.OpenCode])

	return h
}

// SetEnv sets an environment variable for CLI commands run through this
// harness. The variable is restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated home directory for this test harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// ConfigPath returns the config file path this harness assigned to a client.
func (h *Harness) ConfigPath(client model.Client) string {
	return h.paths[client]
}

// Run executes a CLI command with the given arguments and captures stdout.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	if len(args) == 0 || args[0] != "mcpsync" {
		args = append([]string{"mcpsync"}, args...)
	}

	oldStdout := os.Stdout
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = stdoutW

	// Read concurrently so commands producing more than the pipe buffer
	// size never block on a full pipe.
	var stdoutBuf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&stdoutBuf, stdoutR)
	}()

	cmdErr := cli.Run(context.Background(), args)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	os.Stdout = oldStdout

	<-copyDone
	if copyErr != nil {
		h.t.Fatalf("failed to read captured stdout: %v", copyErr)
	}

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdoutBuf.String(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}
