package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "APTGRAPH_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory.
	ConfigFileName = "aptgraph.toml"
	// ConfigDirName is the config directory name under XDG.
	ConfigDirName = "aptgraph"
)

// FindConfigPath searches for a config file in priority order. It returns
// an empty string if none is found.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, ConfigDirName, "config.toml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
