package main

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Config holds the settings read from config.toml.
type Config struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	Lang        string `toml:"lang"`
	Color       bool   `toml:"color"`
}

func defaultConfig() Config {
	return Config{
		Prompt: "oql> ",
		Lang:   "expr",
		Color:  true,
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "oqlseq", "config.toml")
}

// loadConfig reads the config at path over the defaults. An empty path means
// the default location, which is allowed to be missing.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		if path = defaultConfigPath(); path == "" {
			return cfg, nil
		}
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no config file", "path", path)
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %v", path)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "path", path, "key", key.String())
	}
	if cfg.HistoryFile != "" {
		cfg.HistoryFile = expandHome(cfg.HistoryFile)
	}
	slog.Debug("loaded config", "path", path, "lang", cfg.Lang)
	return cfg, nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func applyColor(enabled bool) {
	if !enabled {
		color.NoColor = true
	}
}
