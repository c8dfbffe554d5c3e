// Package cursor implements the Codec interface for the Cursor editor.
//
// Cursor configs come in two shapes: the native format, a top-level
// "servers" array of named entries next to a "version" field, and the
// Claude-compatible "mcpServers" object. The codec reads both and writes
// back whichever shape the file already uses, defaulting to native for
// new files. When a file carries both sections the Claude-compatible one
// wins and the native section is dropped on save.
package cursor

import (
	"path/filepath"
	"strings"

	"github.com/klauern/mcpsync/internal/codec"
	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

const (
	nativeKey  = "servers"
	claudeKey  = "mcpServers"
	versionKey = "version"

	// disabledKey is an extension to the stock mcpServers schema, which
	// has no enabled field. Cursor tolerates unknown entry keys, and
	// writing it keeps Enabled=false from being lost on a round trip
	// through the claude-compatible format.
	disabledKey = "disabled"

	defaultVersion = "1.0"
)

// Format identifies which schema a cursor config file uses.
type Format string

const (
	FormatNative Format = "cursor"
	FormatClaude Format = "claude"
	FormatBoth   Format = "both"
	FormatNone   Format = "none"
)

// Codec handles Cursor configuration files.
type Codec struct {
	path string
}

// New creates a codec for the Cursor config. If path is empty, the
// default ~/.cursor/mcp.json is used.
func New(path string) *Codec {
	if path == "" {
		path = DefaultPath()
	}
	return &Codec{path: path}
}

// DefaultPath returns the default Cursor config file path.
func DefaultPath() string {
	return filepath.Join(util.HomeDir(), ".cursor", "mcp.json")
}

// Client returns the client this codec handles.
func (c *Codec) Client() model.Client {
	return model.Cursor
}

// Path returns the config file path.
func (c *Codec) Path() string {
	return c.path
}

// Detect reports whether the config file exists.
func (c *Codec) Detect() bool {
	return util.PathExists(c.path)
}

func detectFormat(root map[string]any) Format {
	_, hasClaude := root[claudeKey]
	_, hasNative := root[nativeKey]
	switch {
	case hasClaude && hasNative:
		return FormatBoth
	case hasClaude:
		return FormatClaude
	case hasNative:
		return FormatNative
	default:
		return FormatNone
	}
}

// Load parses the config file into canonical entries, reading whichever
// section(s) are present.
func (c *Codec) Load() (model.ServerMap, error) {
	doc, err := codec.LoadDocument(model.Cursor, c.path)
	if err != nil {
		return nil, err
	}

	servers := make(model.ServerMap)
	if !doc.Exists() {
		return servers, nil
	}

	format := detectFormat(doc.Root)
	if format == FormatBoth {
		logging.Warn("config carries both servers and mcpServers sections",
			logging.Client(string(model.Cursor)),
			logging.Path(c.path),
		)
	}

	if format == FormatClaude || format == FormatBoth {
		if err := c.loadClaudeSection(doc.Root, servers); err != nil {
			return nil, err
		}
	}
	if format == FormatNative || format == FormatBoth {
		if err := c.loadNativeSection(doc.Root, servers); err != nil {
			return nil, err
		}
	}
	return servers, nil
}

func (c *Codec) loadClaudeSection(root map[string]any, servers model.ServerMap) error {
	section, ok := root[claudeKey].(map[string]any)
	if !ok {
		return &codec.SchemaError{
			Client: model.Cursor, Path: c.path,
			Node: claudeKey, Message: "expected an object keyed by server name",
		}
	}

	for name, rawEntry := range section {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			logging.Warn("skipping malformed server entry",
				logging.Client(string(model.Cursor)),
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
			Enabled: !codec.Bool(entry, disabledKey, false),
			Extra:   codec.Extra(entry, "command", "args", "env", "type", "url", disabledKey),
		}
		if err := s.Validate(); err != nil {
			logging.Warn("skipping invalid server entry",
				logging.Client(string(model.Cursor)),
				logging.Server(name),
				logging.Err(err),
			)
			continue
		}
		servers[name] = s
	}
	return nil
}

func (c *Codec) loadNativeSection(root map[string]any, servers model.ServerMap) error {
	section, ok := root[nativeKey].([]any)
	if !ok {
		return &codec.SchemaError{
			Client: model.Cursor, Path: c.path,
			Node: nativeKey, Message: "expected an array of server entries",
		}
	}

	for _, rawEntry := range section {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			logging.Warn("skipping malformed server entry",
				logging.Client(string(model.Cursor)),
			)
			continue
		}

		name := codec.String(entry, "name")
		command := codec.String(entry, "command")
		args := codec.StringSlice(entry, "args")

		// Older native configs join the executable and its arguments
		// into one command string.
		if len(args) == 0 && strings.ContainsRune(command, ' ') {
			parts := strings.Fields(command)
			command = parts[0]
			args = parts[1:]
		}

		s := model.Server{
			Name:    name,
			Type:    parseNativeType(codec.String(entry, "type")),
			Command: command,
			Args:    args,
			Env:     codec.StringMap(entry, "env"),
			URL:     codec.String(entry, "url"),
			Enabled: codec.Bool(entry, "enabled", true),
			Extra:   codec.Extra(entry, "name", "type", "command", "args", "env", "url", "enabled"),
		}
		if err := s.Validate(); err != nil {
			logging.Warn("skipping invalid server entry",
				logging.Client(string(model.Cursor)),
				logging.Server(name),
				logging.Err(err),
			)
			continue
		}
		servers[name] = s
	}
	return nil
}

// parseNativeType maps the native type vocabulary, which uses "command"
// where the canonical model says stdio.
func parseNativeType(s string) model.ServerType {
	switch s {
	case "sse":
		return model.ServerTypeSSE
	case "http":
		return model.ServerTypeHTTP
	default:
		return model.ServerTypeStdio
	}
}

// Save serializes the entries back in whichever format the file already
// uses. New files get the native format with a version field.
func (c *Codec) Save(servers model.ServerMap) error {
	doc, err := codec.LoadDocument(model.Cursor, c.path)
	if err != nil {
		return err
	}

	format := detectFormat(doc.Root)
	if format == FormatBoth {
		// The Claude-compatible section wins; the stale native one goes.
		format = FormatClaude
		delete(doc.Root, nativeKey)
	}

	switch format {
	case FormatClaude:
		c.saveClaudeSection(doc.Root, servers)
	default:
		if !doc.Exists() {
			doc.Root[versionKey] = defaultVersion
		}
		c.saveNativeSection(doc.Root, servers)
	}
	return doc.Save()
}

func (c *Codec) saveClaudeSection(root map[string]any, servers model.ServerMap) {
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
		if !s.Enabled {
			entry[disabledKey] = true
		}
		codec.MergeExtra(entry, s.Extra)
		section[name] = entry
	}
	root[claudeKey] = section
}

func (c *Codec) saveNativeSection(root map[string]any, servers model.ServerMap) {
	section := make([]any, 0, len(servers))
	for _, name := range servers.Names() {
		s := servers[name]
		entry := map[string]any{
			"name":    s.Name,
			"enabled": s.Enabled,
		}
		if s.Type.IsRemote() {
			entry["type"] = string(s.Type)
			entry["url"] = s.URL
		} else {
			entry["type"] = "command"
			entry["command"] = s.Command
			if len(s.Args) > 0 {
				entry["args"] = codec.ArgsSlice(s.Args)
			}
			if env := codec.EnvMap(s.Env); env != nil {
				entry["env"] = env
			}
		}
		codec.MergeExtra(entry, s.Extra)
		section = append(section, entry)
	}
	root[nativeKey] = section
}
