package cli

import (
	"runtime"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	output, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines of output, got %d: %q", len(lines), output)
	}
	if !strings.HasPrefix(lines[0], "mcpsync version ") {
		t.Errorf("first line should start with 'mcpsync version ', got %q", lines[0])
	}

	for _, want := range []string{Version, Commit, BuildDate, runtime.Version()} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got %q", want, output)
		}
	}
}

func TestVersionCommandDefinition(t *testing.T) {
	cmd := versionCommand()

	if cmd.Name != "version" {
		t.Errorf("command name = %q, want %q", cmd.Name, "version")
	}
	if cmd.Usage == "" {
		t.Error("command should have usage text")
	}
	if cmd.Action == nil {
		t.Error("command should have an action function")
	}
}
