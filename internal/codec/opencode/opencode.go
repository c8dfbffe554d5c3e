// Package opencode implements the Codec interface for OpenCode.
//
// Servers live in a top-level "mcp" object. Each entry is either
// type "local" (command given as a single array of executable plus
// arguments, env under "environment") or type "remote" (a bare "url").
// The file carries a "$schema" pointer that is added for new files and
// never touched otherwise.
package opencode

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/klauern/mcpsync/internal/codec"
	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

const (
	serversKey = "mcp"
	schemaKey  = "$schema"

	schemaURL = "https://opencode.ai/config.json"
)

// Codec handles OpenCode configuration files.
type Codec struct {
	path string
}

// New creates a codec for the OpenCode config. If path is empty, the
// default config-dir opencode.json is used.
func New(path string) *Codec {
	if path == "" {
		path = DefaultPath()
	}
	return &Codec{path: path}
}

// DefaultPath returns the default OpenCode config file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "opencode", "opencode.json")
}

// Client returns the client this codec handles.
func (c *Codec) Client() model.Client {
	return model.OpenCode
}

// Path returns the config file path.
func (c *Codec) Path() string {
	return c.path
}

// Detect reports whether the config file exists.
func (c *Codec) Detect() bool {
	return util.PathExists(c.path)
}

// remoteType guesses the transport of a remote entry, which OpenCode does
// not record: plain http URLs without an sse path segment are treated as
// streaming HTTP, everything else as SSE.
func remoteType(url string) model.ServerType {
	if strings.HasPrefix(url, "http://") && !strings.Contains(url, "sse") {
		return model.ServerTypeHTTP
	}
	return model.ServerTypeSSE
}

// Load parses the mcp section into canonical entries.
func (c *Codec) Load() (model.ServerMap, error) {
	doc, err := codec.LoadDocument(model.OpenCode, c.path)
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
			Client: model.OpenCode, Path: c.path,
			Node: serversKey, Message: "expected an object keyed by server name",
		}
	}

	for name, rawEntry := range section {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			logging.Warn("skipping malformed server entry",
				logging.Client(string(model.OpenCode)),
				logging.Server(name),
			)
			continue
		}

		var s model.Server
		switch codec.String(entry, "type") {
		case "remote":
			url := codec.String(entry, "url")
			s = model.Server{
				Name:    name,
				Type:    remoteType(url),
				URL:     url,
				Enabled: codec.Bool(entry, "enabled", true),
				Extra:   codec.Extra(entry, "type", "url", "enabled"),
			}
		case "local", "":
			command := codec.StringSlice(entry, "command")
			s = model.Server{
				Name:    name,
				Type:    model.ServerTypeStdio,
				Env:     codec.StringMap(entry, "environment"),
				Enabled: codec.Bool(entry, "enabled", true),
				Extra:   codec.Extra(entry, "type", "command", "environment", "enabled"),
			}
			if len(command) > 0 {
				s.Command = command[0]
				s.Args = command[1:]
			}
			if len(s.Args) == 0 {
				s.Args = nil
			}
		default:
			logging.Warn("skipping server entry with unknown type",
				logging.Client(string(model.OpenCode)),
				logging.Server(name),
			)
			continue
		}

		if err := s.Validate(); err != nil {
			logging.Warn("skipping invalid server entry",
				logging.Client(string(model.OpenCode)),
				logging.Server(name),
				logging.Err(err),
			)
			continue
		}
		servers[name] = s
	}

	return servers, nil
}

// Save serializes the entries back into the mcp section. New files get a
// $schema pointer; existing files keep whatever they had.
func (c *Codec) Save(servers model.ServerMap) error {
	doc, err := codec.LoadDocument(model.OpenCode, c.path)
	if err != nil {
		return err
	}

	if _, ok := doc.Root[schemaKey]; !ok {
		doc.Root[schemaKey] = schemaURL
	}

	section := make(map[string]any, len(servers))
	for name, s := range servers {
		entry := map[string]any{"enabled": s.Enabled}

		if s.Type.IsRemote() {
			entry["type"] = "remote"
			entry["url"] = s.URL
		} else {
			command := make([]any, 0, 1+len(s.Args))
			command = append(command, s.Command)
			for _, a := range s.Args {
				command = append(command, a)
			}
			entry["type"] = "local"
			entry["command"] = command
			if env := codec.EnvMap(s.Env); env != nil {
				entry["environment"] = env
			}
		}

		codec.MergeExtra(entry, s.Extra)
		section[name] = entry
	}

	doc.Root[serversKey] = section
	return doc.Save()
}
