package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// appDir is the directory name used for mcpsync state under the XDG base dirs.
const appDir = "mcpsync"

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigDir returns the mcpsync configuration directory (XDG config home)
func ConfigDir() string {
	if override := os.Getenv("MCPSYNC_CONFIG_DIR"); override != "" {
		return override
	}
	return filepath.Join(xdg.ConfigHome, appDir)
}

// DataDir returns the mcpsync data directory (XDG data home)
func DataDir() string {
	if override := os.Getenv("MCPSYNC_DATA_DIR"); override != "" {
		return override
	}
	return filepath.Join(xdg.DataHome, appDir)
}

// BackupsDir returns the directory holding configuration backups
func BackupsDir() string {
	return filepath.Join(DataDir(), "backups")
}

// MetadataDir returns the directory holding the backup index
func MetadataDir() string {
	return filepath.Join(DataDir(), "metadata")
}

// ExpandPath expands a leading ~ to the user's home directory and resolves
// relative paths against baseDir (or the working directory when baseDir is empty).
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}

	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	if baseDir == "" {
		baseDir, _ = os.Getwd()
	}
	return filepath.Join(baseDir, path)
}

// PathExists reports whether the given path exists on the filesystem
func PathExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
