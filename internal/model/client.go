// Package model defines the canonical MCP server entry and the set of
// supported client applications.
package model

// Client identifies a supported MCP client application
type Client string

const (
	ClaudeCode    Client = "claude-code"
	ClaudeDesktop Client = "claude-desktop"
	Cursor        Client = "cursor"
	VSCode        Client = "vscode"
	GeminiCLI     Client = "gemini-cli"
	OpenCode      Client = "opencode"
)

// IsValid returns true if the client is recognized
func (c Client) IsValid() bool {
	switch c {
	case ClaudeCode, ClaudeDesktop, Cursor, VSCode, GeminiCLI, OpenCode:
		return true
	default:
		return false
	}
}

// String returns the client identifier.
func (c Client) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the client.
func (c Client) DisplayName() string {
	switch c {
	case ClaudeCode:
		return "Claude Code"
	case ClaudeDesktop:
		return "Claude Desktop"
	case Cursor:
		return "Cursor"
	case VSCode:
		return "VS Code"
	case GeminiCLI:
		return "Gemini CLI"
	case OpenCode:
		return "OpenCode"
	default:
		return string(c)
	}
}

// AllClients returns all supported clients
func AllClients() []Client {
	return []Client{ClaudeCode, ClaudeDesktop, Cursor, VSCode, GeminiCLI, OpenCode}
}

// ParseClient converts a string identifier into a Client.
func ParseClient(s string) (Client, error) {
	c := Client(s)
	if !c.IsValid() {
		return "", &UnknownClientError{Client: s}
	}
	return c, nil
}

// ClientConfig describes one client's configuration file on disk.
type ClientConfig struct {
	// Client is the client identifier.
	Client Client
	// Path is the absolute path to the client's config file.
	Path string
	// Exists indicates whether the config file is present.
	Exists bool
	// Installed indicates whether the client's executable was found on
	// PATH. Always false for clients without a CLI binary.
	Installed bool
}
