// Package claude implements the Codec interface for Claude Code and
// Claude Desktop. Both clients share the same schema: a top-level
// "mcpServers" object keyed by server name, each value carrying
// command/args/env for stdio servers or type/url for remote ones.
package claude

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/klauern/mcpsync/internal/codec"
	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

const serversKey = "mcpServers"

// Codec handles Claude Code and Claude Desktop configuration files.
type Codec struct {
	client model.Client
	path   string
}

// NewCode creates a codec for the Claude Code CLI config.
// If path is empty, the default ~/.claude.json is used.
func NewCode(path string) *Codec {
	if path == "" {
		path = DefaultCodePath()
	}
	return &Codec{client: model.ClaudeCode, path: path}
}

// NewDesktop creates a codec for the Claude Desktop app config.
// If path is empty, the platform default is used.
func NewDesktop(path string) *Codec {
	if path == "" {
		path = DefaultDesktopPath()
	}
	return &Codec{client: model.ClaudeDesktop, path: path}
}

// DefaultCodePath returns the default Claude Code config file path.
func DefaultCodePath() string {
	return filepath.Join(util.HomeDir(), ".claude.json")
}

// DefaultDesktopPath returns the default Claude Desktop config file path.
// xdg.ConfigHome resolves to ~/Library/Application Support on macOS and
// ~/.config elsewhere, matching where the app writes its config.
func DefaultDesktopPath() string {
	return filepath.Join(xdg.ConfigHome, "Claude", "claude_desktop_config.json")
}

// Client returns the client this codec handles.
func (c *Codec) Client() model.Client {
	return c.client
}

// Path returns the config file path.
func (c *Codec) Path() string {
	return c.path
}

// Detect reports whether the config file exists.
func (c *Codec) Detect() bool {
	return util.PathExists(c.path)
}

// Load parses the mcpServers section into canonical entries.
func (c *Codec) Load() (model.ServerMap, error) {
	doc, err := codec.LoadDocument(c.client, c.path)
	if err != nil {
		return nil, err
	}

	servers := make(model.ServerMap)
	if !doc.Exists() {
		return servers, nil
	}

	raw, ok := doc.Root[serversKey]
	if !ok {
		return servers, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, &codec.SchemaError{
			Client: c.client, Path: c.path,
			Node: serversKey, Message: "expected an object keyed by server name",
		}
	}

	for name, rawEntry := range section {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			logging.Warn("skipping malformed server entry",
				logging.Client(string(c.client)),
				logging.Server(name),
			)
			continue
		}

		s := model.Server{
			Name:    name,
			Type:    codec.ParseServerType(codec.String(entry, "type")),
			Command: codec.String(entry, "command"),
			Args:    codec.StringSlice(entry, "args"),
			Env:     codec.StringMap(entry, "env"),
			URL:     codec.String(entry, "url"),
			Enabled: true,
			Extra:   codec.Extra(entry, "command", "args", "env", "type", "url"),
		}

		if err := s.Validate(); err != nil {
			logging.Warn("skipping invalid server entry",
				logging.Client(string(c.client)),
				logging.Server(name),
				logging.Err(err),
			)
			continue
		}
		servers[name] = s
	}

	return servers, nil
}

// Save serializes the entries back into the mcpServers section, preserving
// every other top-level key in the file.
func (c *Codec) Save(servers model.ServerMap) error {
	doc, err := codec.LoadDocument(c.client, c.path)
	if err != nil {
		return err
	}

	section := make(map[string]any, len(servers))
	for name, s := range servers {
		entry := make(map[string]any)

		if s.Type.IsRemote() {
			entry["type"] = string(s.Type)
			entry["url"] = s.URL
		} else {
			entry["command"] = s.Command
			entry["args"] = codec.ArgsSlice(s.Args)
			if env := codec.EnvMap(s.Env); env != nil {
				entry["env"] = env
			}
		}

		codec.MergeExtra(entry, s.Extra)
		section[name] = entry
	}

	doc.Root[serversKey] = section
	return doc.Save()
}
