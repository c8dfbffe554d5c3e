// Package registry wires each supported client to its codec and knows
// where every client keeps its config file.
package registry

import (
	"github.com/klauern/mcpsync/internal/codec"
	"github.com/klauern/mcpsync/internal/codec/claude"
	"github.com/klauern/mcpsync/internal/codec/cursor"
	"github.com/klauern/mcpsync/internal/codec/gemini"
	"github.com/klauern/mcpsync/internal/codec/opencode"
	"github.com/klauern/mcpsync/internal/codec/vscode"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

// Registry maps clients to codecs. Paths come from per-client overrides
// when set and from each client's default location otherwise.
type Registry struct {
	codecs map[model.Client]codec.Codec
}

// New builds a registry for all supported clients. overrides maps a
// client to a config file path that replaces its default; a nil map or
// empty value means the default is used. Override paths get ~ and
// relative-path expansion.
func New(overrides map[model.Client]string) *Registry {
	path := func(client model.Client) string {
		if p := overrides[client]; p != "" {
			return util.ExpandPath(p, "")
		}
		return ""
	}

	return &Registry{
		codecs: map[model.Client]codec.Codec{
			model.ClaudeCode:    claude.NewCode(path(model.ClaudeCode)),
			model.ClaudeDesktop: claude.NewDesktop(path(model.ClaudeDesktop)),
			model.Cursor:        cursor.New(path(model.Cursor)),
			model.VSCode:        vscode.New(path(model.VSCode)),
			model.GeminiCLI:     gemini.New(path(model.GeminiCLI)),
			model.OpenCode:      opencode.New(path(model.OpenCode)),
		},
	}
}

// Resolve returns the codec for a client.
func (r *Registry) Resolve(client model.Client) (codec.Codec, error) {
	c, ok := r.codecs[client]
	if !ok {
		return nil, &model.UnknownClientError{Client: string(client)}
	}
	return c, nil
}

// All returns every codec in the registry in stable client order.
func (r *Registry) All() []codec.Codec {
	out := make([]codec.Codec, 0, len(r.codecs))
	for _, client := range model.AllClients() {
		if c, ok := r.codecs[client]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Available returns the codecs whose config file exists on this machine.
func (r *Registry) Available() []codec.Codec {
	var out []codec.Codec
	for _, c := range r.All() {
		if c.Detect() {
			out = append(out, c)
		}
	}
	return out
}
