// Package vscode implements the Codec interface for VS Code's dedicated
// MCP config file. Servers live in a top-level "servers" object; the
// sibling "inputs" array (variable prompts referenced by server configs)
// is opaque to the codec and carried through saves untouched.
package vscode

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/klauern/mcpsync/internal/codec"
	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

const serversKey = "servers"

// Codec handles VS Code MCP configuration files.
type Codec struct {
	path string
}

// New creates a codec for the VS Code config. If path is empty, the
// default user-profile mcp.json is used.
func New(path string) *Codec {
	if path == "" {
		path = DefaultPath()
	}
	return &Codec{path: path}
}

// DefaultPath returns the default VS Code MCP config file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "Code", "User", "mcp.json")
}

// Client returns the client this codec handles.
func (c *Codec) Client() model.Client {
	return model.VSCode
}

// Path returns the config file path.
func (c *Codec) Path() string {
	return c.path
}

// Detect reports whether the config file exists.
func (c *Codec) Detect() bool {
	return util.PathExists(c.path)
}

// Load parses the servers section into canonical entries. VS Code allows
// comments and trailing commas in its JSON files; both are tolerated.
func (c *Codec) Load() (model.ServerMap, error) {
	doc, err := codec.LoadDocument(model.VSCode, c.path)
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
			Client: model.VSCode, Path: c.path,
			Node: serversKey, Message: "expected an object keyed by server name",
		}
	}

	for name, rawEntry := range section {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			logging.Warn("skipping malformed server entry",
				logging.Client(string(model.VSCode)),
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
				logging.Client(string(model.VSCode)),
				logging.Server(name),
				logging.Err(err),
			)
			continue
		}
		servers[name] = s
	}

	return servers, nil
}

// Save serializes the entries back into the servers section, keeping the
// inputs array and any other top-level keys intact.
func (c *Codec) Save(servers model.ServerMap) error {
	doc, err := codec.LoadDocument(model.VSCode, c.path)
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
