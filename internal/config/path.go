package config

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under ~/.config.
const AppName = "icns-extractor"

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the default config directory path.
func ConfigDir() string {
	home := resolveHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// ActiveConfigPath returns the file that was loaded by Init or, when none
// was found, the file Init would load first: $ICNS_EXTRACTOR_CONFIG_DIR
// when set, otherwise DefaultConfigPath.
func ActiveConfigPath() string {
	if path := ConfigFilePath(); path != "" {
		return path
	}
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Join(ExpandPath(dir), "config.yaml")
	}
	return DefaultConfigPath()
}

// ConfigExists returns true if the config file exists at the default path.
func ConfigExists() bool {
	return ConfigExistsAt(DefaultConfigPath())
}

// ConfigExistsAt returns true if a config file exists at the specified path.
func ConfigExistsAt(path string) bool {
	_, err := os.Stat(ExpandPath(path))
	return err == nil
}

// resolveHomeDir prefers $HOME so tests can redirect it.
func resolveHomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
