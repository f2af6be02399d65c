package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/dwtools/clustersort/internal/relabel"
)

// UserConfig holds user-level configuration loaded from
// ~/.config/clustersort/config.toml.
type UserConfig struct {
	Sort    SortConfig    `toml:"sort"`
	History HistoryConfig `toml:"history"`
}

// SortConfig carries defaults for the sort command.
type SortConfig struct {
	Delimiter     string `toml:"delimiter"`
	ColumnPattern string `toml:"column_pattern"`
	Reverse       bool   `toml:"reverse"`
	SortRows      bool   `toml:"sort_rows"`
}

// HistoryConfig configures the run-history store.
type HistoryConfig struct {
	Disable bool   `toml:"disable"`
	Path    string `toml:"path"`
}

// loadUserConfig reads ~/.config/clustersort/config.toml and returns the
// parsed config with defaults applied. If the file does not exist, defaults
// are returned with no error.
func loadUserConfig() (*UserConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home dir: %w", err)
	}
	return loadConfigFile(filepath.Join(home, ".config", "clustersort", "config.toml"))
}

func loadConfigFile(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *UserConfig) {
	if cfg.Sort.Delimiter == "" {
		cfg.Sort.Delimiter = "\t"
	}
	if cfg.Sort.ColumnPattern == "" {
		cfg.Sort.ColumnPattern = relabel.DefaultColumnPattern
	}
}

// parseDelimiter turns a config or flag value into the field delimiter
// rune. The two-character escape `\t` and the word "tab" both mean a
// tabulator, so the flag is usable from shells that eat literal tabs.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "\\t", "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

// historyPath returns the history database location, creating the state
// directory if needed.
func historyPath(cfg *UserConfig) (string, error) {
	if cfg.History.Path != "" {
		return cfg.History.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	dir := filepath.Join(home, ".local", "state", "clustersort")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}
