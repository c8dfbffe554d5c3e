package model

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// ServerType represents an MCP server transport type
type ServerType string

const (
	// ServerTypeStdio is a local process spoken to over stdin/stdout.
	ServerTypeStdio ServerType = "stdio"
	// ServerTypeSSE is a remote endpoint using server-sent events.
	ServerTypeSSE ServerType = "sse"
	// ServerTypeHTTP is a remote endpoint using streamable HTTP.
	ServerTypeHTTP ServerType = "http"
)

// IsValid returns true if the server type is recognized
func (t ServerType) IsValid() bool {
	switch t {
	case ServerTypeStdio, ServerTypeSSE, ServerTypeHTTP:
		return true
	default:
		return false
	}
}

// IsRemote returns true for network-endpoint server types.
func (t ServerType) IsRemote() bool {
	return t == ServerTypeSSE || t == ServerTypeHTTP
}

// String returns the string representation of the server type.
func (t ServerType) String() string {
	return string(t)
}

// Server is the canonical representation of one configured MCP server.
// Instances are value objects: codecs construct them on load and operations
// build replacements rather than mutating in place.
type Server struct {
	// Name is the unique key within a client's collection (case-sensitive).
	Name string `json:"name"`
	// Type is the transport variant.
	Type ServerType `json:"type"`

	// Command is the executable for stdio servers.
	Command string `json:"command,omitempty"`
	// Args are the command arguments, in order.
	Args []string `json:"args,omitempty"`
	// Env holds environment variables for the server process.
	Env map[string]string `json:"env,omitempty"`
	// WorkingDir is the working directory for the server process.
	WorkingDir string `json:"working_dir,omitempty"`

	// URL is the endpoint for sse/http servers.
	URL string `json:"url,omitempty"`

	// Description is free-form text carried by clients that support it.
	Description string `json:"description,omitempty"`
	// Enabled indicates whether the client should start/use the server.
	Enabled bool `json:"enabled"`
	// Trust allows the client to auto-execute tool calls without confirmation.
	Trust bool `json:"trust,omitempty"`
	// TimeoutMS is the request timeout in milliseconds. Zero means unset;
	// clients apply their own default.
	TimeoutMS int `json:"timeout_ms,omitempty"`

	// Extra holds client-specific fields not modeled above. It is carried
	// through load/save for round-trip fidelity, never merged across clients
	// and never considered by Equal.
	Extra map[string]any `json:"-"`
}

// NewServer returns a stdio server with defaults applied.
func NewServer(name, command string, args ...string) Server {
	return Server{
		Name:    name,
		Type:    ServerTypeStdio,
		Command: command,
		Args:    args,
		Enabled: true,
	}
}

// NewRemoteServer returns a remote server with defaults applied.
func NewRemoteServer(name string, t ServerType, endpoint string) Server {
	return Server{
		Name:    name,
		Type:    t,
		URL:     endpoint,
		Enabled: true,
	}
}

// nameAllowed reports whether r may appear in a server name.
func nameAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}

// Validate checks the server against the model invariants. It returns a
// *ValidationError describing the first violation found, or nil.
func (s Server) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "server name cannot be empty"}
	}
	for _, r := range s.Name {
		if !nameAllowed(r) {
			return &ValidationError{
				Field:   "name",
				Message: "server name can only contain letters, numbers, hyphens, and underscores",
			}
		}
	}

	if !s.Type.IsValid() {
		return &ValidationError{Field: "type", Message: "unknown server type " + string(s.Type)}
	}

	switch {
	case s.Type == ServerTypeStdio:
		if strings.TrimSpace(s.Command) == "" {
			return &ValidationError{Field: "command", Message: "command is required for stdio servers"}
		}
	case s.Type.IsRemote():
		if s.URL == "" {
			return &ValidationError{Field: "url", Message: "url is required for " + string(s.Type) + " servers"}
		}
		u, err := url.Parse(s.URL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return &ValidationError{Field: "url", Message: "url must be an absolute http(s) URL"}
		}
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return &ValidationError{Field: "url", Message: "url scheme must be http or https"}
		}
	}

	if s.TimeoutMS < 0 {
		return &ValidationError{Field: "timeout_ms", Message: "timeout must be positive"}
	}

	return nil
}

// NormalizeURL canonicalizes an endpoint URL for comparison: the scheme and
// host are lowercased and a trailing slash is trimmed from the path. Invalid
// URLs are returned unchanged.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// Equal reports whether two servers are identical after canonicalization.
// Extra fields are deliberately ignored so that cosmetic client-specific
// metadata never forces a spurious sync conflict.
func (s Server) Equal(other Server) bool {
	if s.Name != other.Name ||
		s.Type != other.Type ||
		s.Command != other.Command ||
		s.WorkingDir != other.WorkingDir ||
		s.Description != other.Description ||
		s.Enabled != other.Enabled ||
		s.Trust != other.Trust ||
		s.TimeoutMS != other.TimeoutMS {
		return false
	}
	if NormalizeURL(s.URL) != NormalizeURL(other.URL) {
		return false
	}
	if !slices.Equal(s.Args, other.Args) {
		return false
	}
	if !maps.Equal(s.Env, other.Env) {
		return false
	}
	return true
}

// Clone returns a deep copy of the server.
func (s Server) Clone() Server {
	c := s
	if s.Args != nil {
		c.Args = slices.Clone(s.Args)
	}
	if s.Env != nil {
		c.Env = maps.Clone(s.Env)
	}
	if s.Extra != nil {
		c.Extra = maps.Clone(s.Extra)
	}
	return c
}

// WithoutExtra returns a copy of the server with client-specific extra
// fields stripped. Sync uses this so one client's metadata never leaks
// into another client's file.
func (s Server) WithoutExtra() Server {
	c := s.Clone()
	c.Extra = nil
	return c
}

// ServerMap is a collection of servers keyed by name.
type ServerMap map[string]Server

// Names returns the server names in sorted order.
func (m ServerMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns a deep copy of the collection.
func (m ServerMap) Clone() ServerMap {
	out := make(ServerMap, len(m))
	for name, s := range m {
		out[name] = s.Clone()
	}
	return out
}
