// Package config provides configuration management for mcpsync.
// It supports YAML configuration files, environment variables, and sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

// Config represents the complete mcpsync configuration.
type Config struct {
	// Clients configures per-client config file locations
	Clients ClientsConfig `yaml:"clients"`

	// Sync configures default synchronization behavior
	Sync SyncConfig `yaml:"sync"`

	// Backup configures backup behavior
	Backup BackupConfig `yaml:"backup"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output"`
}

// ClientsConfig holds client-specific configuration.
type ClientsConfig struct {
	ClaudeCode    ClientConfig `yaml:"claude_code"`
	ClaudeDesktop ClientConfig `yaml:"claude_desktop"`
	Cursor        ClientConfig `yaml:"cursor"`
	VSCode        ClientConfig `yaml:"vscode"`
	GeminiCLI     ClientConfig `yaml:"gemini_cli"`
	OpenCode      ClientConfig `yaml:"opencode"`
}

// ClientConfig holds configuration for a single client.
type ClientConfig struct {
	// ConfigPath overrides the client's default config file location.
	// Supports ~ for the home directory.
	ConfigPath string `yaml:"config_path,omitempty"`
}

// SyncConfig holds synchronization settings.
type SyncConfig struct {
	// AutoBackup enables automatic backup before any destructive write
	AutoBackup bool `yaml:"auto_backup"`
	// Overwrite resolves sync conflicts in favor of the source by default
	Overwrite bool `yaml:"overwrite"`
	// DefaultTargets is the target list used when a sync names none
	DefaultTargets []string `yaml:"default_targets,omitempty"`
}

// BackupConfig holds backup settings.
type BackupConfig struct {
	// Location is the backup directory path
	Location string `yaml:"location"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the default output format (table, json)
	Format string `yaml:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
	// Verbose enables verbose output
	Verbose bool `yaml:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			AutoBackup: true,
			Overwrite:  false,
		},
		Backup: BackupConfig{
			Location: util.BackupsDir(),
		},
		Output: OutputConfig{
			Format:  "table",
			Color:   "auto",
			Verbose: false,
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.ConfigDir(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	configPath := FilePath()
	// #nosec G304 - configPath is constructed from trusted config directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvironment()
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// PathOverrides returns the per-client config path overrides for the
// registry, omitting clients without one.
func (c *Config) PathOverrides() map[model.Client]string {
	paths := map[model.Client]string{
		model.ClaudeCode:    c.Clients.ClaudeCode.ConfigPath,
		model.ClaudeDesktop: c.Clients.ClaudeDesktop.ConfigPath,
		model.Cursor:        c.Clients.Cursor.ConfigPath,
		model.VSCode:        c.Clients.VSCode.ConfigPath,
		model.GeminiCLI:     c.Clients.GeminiCLI.ConfigPath,
		model.OpenCode:      c.Clients.OpenCode.ConfigPath,
	}
	for client, p := range paths {
		if p == "" {
			delete(paths, client)
		}
	}
	return paths
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern MCPSYNC_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("MCPSYNC_SYNC_AUTO_BACKUP"); v != "" {
		c.Sync.AutoBackup = parseBool(v)
	}
	if v := os.Getenv("MCPSYNC_SYNC_OVERWRITE"); v != "" {
		c.Sync.Overwrite = parseBool(v)
	}

	if v := os.Getenv("MCPSYNC_BACKUP_LOCATION"); v != "" {
		c.Backup.Location = v
	}

	if v := os.Getenv("MCPSYNC_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("MCPSYNC_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("MCPSYNC_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}

	// Per-client path overrides
	if v := os.Getenv("MCPSYNC_CLAUDE_CODE_PATH"); v != "" {
		c.Clients.ClaudeCode.ConfigPath = v
	}
	if v := os.Getenv("MCPSYNC_CLAUDE_DESKTOP_PATH"); v != "" {
		c.Clients.ClaudeDesktop.ConfigPath = v
	}
	if v := os.Getenv("MCPSYNC_CURSOR_PATH"); v != "" {
		c.Clients.Cursor.ConfigPath = v
	}
	if v := os.Getenv("MCPSYNC_VSCODE_PATH"); v != "" {
		c.Clients.VSCode.ConfigPath = v
	}
	if v := os.Getenv("MCPSYNC_GEMINI_CLI_PATH"); v != "" {
		c.Clients.GeminiCLI.ConfigPath = v
	}
	if v := os.Getenv("MCPSYNC_OPENCODE_PATH"); v != "" {
		c.Clients.OpenCode.ConfigPath = v
	}
}

// parseBool parses a boolean-ish environment value.
func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
