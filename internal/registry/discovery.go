package registry

import (
	"os/exec"

	"github.com/klauern/mcpsync/internal/model"
)

// binaries maps each client to the executable names that indicate the
// client itself is installed, independent of whether a config file
// exists yet. Claude Desktop ships as an app bundle without a CLI, so it
// has no probe and is detected by its config file alone.
var binaries = map[model.Client][]string{
	model.ClaudeCode: {"claude"},
	model.Cursor:     {"cursor"},
	model.VSCode:     {"code", "code-insiders"},
	model.GeminiCLI:  {"gemini"},
	model.OpenCode:   {"opencode"},
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// Installed reports whether the client's executable is on PATH.
func Installed(client model.Client) bool {
	for _, bin := range binaries[client] {
		if _, err := lookPath(bin); err == nil {
			return true
		}
	}
	return false
}

// Discover inspects every supported client and reports where its config
// lives, whether that file exists, and whether the client binary is on
// PATH. Used by status output and target defaulting.
func (r *Registry) Discover() []model.ClientConfig {
	out := make([]model.ClientConfig, 0, len(r.codecs))
	for _, c := range r.All() {
		out = append(out, model.ClientConfig{
			Client:    c.Client(),
			Path:      c.Path(),
			Exists:    c.Detect(),
			Installed: Installed(c.Client()),
		})
	}
	return out
}
