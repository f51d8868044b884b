// Package config loads mal interpreter settings from TOML files.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the per-project config file name.
const ProjectFile = ".mal.toml"

// Config holds interpreter settings.
type Config struct {
	Prompt       string   `toml:"prompt"`
	HistoryFile  string   `toml:"history_file"`
	HistoryLimit int      `toml:"history_limit"`
	Stats        bool     `toml:"stats"`
	Preload      []string `toml:"preload"`

	// Source is the file the settings came from, empty for defaults.
	Source string `toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:       "user> ",
		HistoryFile:  "~/.mal_history",
		HistoryLimit: 1000,
	}
}

// Load loads settings from project and user config files.
// Precedence: project (.mal.toml) → user (~/.mal/config.toml) → defaults.
// A file that exists but fails to parse is an error.
func Load(projectDir string) (*Config, error) {
	projectPath := filepath.Join(projectDir, ProjectFile)
	if cfg, err := LoadFile(projectPath); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(homeDir, ".mal", "config.toml")
		if cfg, err := LoadFile(userPath); err == nil || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	return Default(), nil
}

// LoadFile reads a single config file. Keys missing from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.Source = path
	cfg.HistoryFile = ExpandHome(cfg.HistoryFile)
	for i, p := range cfg.Preload {
		cfg.Preload[i] = ExpandHome(p)
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
