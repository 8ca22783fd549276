package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/kproto/internal/config"
)

// kproto config.toml key mapping onto config.Default. Unknown keys are
// tolerated here; `kproto config validate` is the strict path.
type fileConfig struct {
	Platform string `toml:"platform"`
	ID       string `toml:"id"`
	Output   string `toml:"output"`
	LogLevel string `toml:"log_level"`
}

func loadCLIConfig(path string) (config.Config, error) {
	cfg := config.Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.Config{}, fmt.Errorf("load kproto config: %w", err)
	}

	if meta.IsDefined("platform") {
		cfg.Platform = strings.TrimSpace(raw.Platform)
	}
	if meta.IsDefined("id") {
		cfg.ID = strings.TrimSpace(raw.ID)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("kproto config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig loads an explicit path, else the default path if present,
// else the built-in defaults.
func resolveConfig(explicit string) (config.Config, string, error) {
	if explicit != "" {
		cfg, err := loadCLIConfig(explicit)
		return cfg, explicit, err
	}
	path := config.DefaultPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), "", nil
		}
		return config.Config{}, "", err
	}
	cfg, err := loadCLIConfig(path)
	return cfg, path, err
}
