// Package gemini implements the Codec interface for the Gemini CLI.
//
// Servers live in a "mcpServers" object inside ~/.gemini/settings.json.
// The schema carries fields the other clients lack: "trust" (skip tool
// call confirmations), "cwd" (stdio working directory), and "timeout"
// (request timeout in milliseconds). Remote servers use "httpUrl" for
// streaming HTTP and "url" for SSE.
package gemini

import (
	"path/filepath"

	"github.com/klauern/mcpsync/internal/codec"
	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

const serversKey = "mcpServers"

// DefaultTimeoutMS is the request timeout Gemini applies when a server
// entry has none. Saves materialize it so the file states the effective
// value.
const DefaultTimeoutMS = 600000

// Codec handles Gemini CLI configuration files.
type Codec struct {
	path string
}

// New creates a codec for the Gemini CLI config. If path is empty, the
// default ~/.gemini/settings.json is used.
func New(path string) *Codec {
	if path == "" {
		path = DefaultPath()
	}
	return &Codec{path: path}
}

// DefaultPath returns the default Gemini CLI settings file path.
func DefaultPath() string {
	return filepath.Join(util.HomeDir(), ".gemini", "settings.json")
}

// Client returns the client this codec handles.
func (c *Codec) Client() model.Client {
	return model.GeminiCLI
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
	doc, err := codec.LoadDocument(model.GeminiCLI, c.path)
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
			Client: model.GeminiCLI, Path: c.path,
			Node: serversKey, Message: "expected an object keyed by server name",
		}
	}

	for name, rawEntry := range section {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			logging.Warn("skipping malformed server entry",
				logging.Client(string(model.GeminiCLI)),
				logging.Server(name),
			)
			continue
		}

		serverType := codec.ParseServerType(codec.String(entry, "type"))
		url := codec.String(entry, "url")
		if httpURL := codec.String(entry, "httpUrl"); httpURL != "" {
			url = httpURL
			serverType = model.ServerTypeHTTP
		} else if url != "" && serverType == model.ServerTypeStdio {
			serverType = model.ServerTypeSSE
		}

		s := model.Server{
			Name:       name,
			Type:       serverType,
			Command:    codec.String(entry, "command"),
			Args:       codec.StringSlice(entry, "args"),
			Env:        codec.StringMap(entry, "env"),
			WorkingDir: codec.String(entry, "cwd"),
			URL:        url,
			Enabled:    true,
			Trust:      codec.Bool(entry, "trust", false),
			TimeoutMS:  codec.Int(entry, "timeout"),
			Extra: codec.Extra(entry,
				"command", "args", "env", "type", "url", "httpUrl",
				"cwd", "trust", "timeout"),
		}
		if err := s.Validate(); err != nil {
			logging.Warn("skipping invalid server entry",
				logging.Client(string(model.GeminiCLI)),
				logging.Server(name),
				logging.Err(err),
			)
			continue
		}
		servers[name] = s
	}

	return servers, nil
}

// Save serializes the entries back into the mcpServers section, keeping
// the rest of settings.json intact. Entries without a timeout get the
// client's default.
func (c *Codec) Save(servers model.ServerMap) error {
	doc, err := codec.LoadDocument(model.GeminiCLI, c.path)
	if err != nil {
		return err
	}

	section := make(map[string]any, len(servers))
	for name, s := range servers {
		entry := make(map[string]any)

		switch s.Type {
		case model.ServerTypeHTTP:
			entry["httpUrl"] = s.URL
		case model.ServerTypeSSE:
			entry["url"] = s.URL
		default:
			entry["command"] = s.Command
			entry["args"] = codec.ArgsSlice(s.Args)
			if env := codec.EnvMap(s.Env); env != nil {
				entry["env"] = env
			}
			if s.WorkingDir != "" {
				entry["cwd"] = s.WorkingDir
			}
		}

		if s.Trust {
			entry["trust"] = true
		}
		timeout := s.TimeoutMS
		if timeout == 0 {
			timeout = DefaultTimeoutMS
		}
		entry["timeout"] = timeout

		codec.MergeExtra(entry, s.Extra)
		section[name] = entry
	}

	doc.Root[serversKey] = section
	return doc.Save()
}
