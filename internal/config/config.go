package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danmuck/kproto/internal/logging"
	"github.com/pelletier/go-toml/v2"
)

const (
	OutputText = "text"
	OutputHex  = "hex"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the defaults the kproto CLI applies when flags are absent.
// An empty LogLevel keeps the level chosen by the log profile and
// KPROTO_LOG_LEVEL.
type Config struct {
	Platform string `toml:"platform"`
	ID       string `toml:"id"`
	Output   string `toml:"output"`
	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		Platform: "kiq",
		Output:   OutputText,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/kproto/config.toml or its platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kproto.toml"
	}
	return filepath.Join(dir, "kproto", "config.toml")
}

// Load reads a config file strictly: unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := loadToml(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	cfg.LogLevel = strings.TrimSpace(cfg.LogLevel)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func Validate(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case OutputText, OutputHex, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config output must be one of text|hex|json|yaml, got %q", cfg.Output)
	}
	if cfg.LogLevel == "" {
		return nil
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("config log_level invalid: %q", cfg.LogLevel)
	}
	return nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
