package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "todo"
	DefaultConfigFileName = "config.toml"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	UIAuto = "auto"
	UILine = "line"
	UITUI  = "tui"
)

// Keymap holds the single-token commands recognised at the main prompt.
// Any other input is taken as the text of a new task.
type Keymap struct {
	ViewAll     string `toml:"view_all"`
	MarkDone    string `toml:"mark_done"`
	Remove      string `toml:"remove"`
	ViewPending string `toml:"view_pending"`
	ViewDone    string `toml:"view_done"`
	Quit        string `toml:"quit"`
}

type Config struct {
	Store    string `toml:"store"`
	UI       string `toml:"ui"`
	Color    bool   `toml:"color"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
	Keys     Keymap `toml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/todo/config.toml, falling back
// to ~/.config/todo/config.toml.
func ResolveConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", AppName, DefaultConfigFileName)
}

// Load reads the config at path. A missing file yields the defaults; the
// file is never created.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Store == "" {
		cfg.Store = StoreMemory
	}
	if cfg.UI == "" {
		cfg.UI = UIAuto
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	switch c.UI {
	case UIAuto, UILine, UITUI:
	default:
		return fmt.Errorf("unknown ui %q", c.UI)
	}
	return c.Keys.Validate()
}

// Validate requires every command token to be set and all tokens, including
// an optional quit token, to be distinct.
func (k Keymap) Validate() error {
	seen := map[string]string{}
	for _, b := range []struct {
		name, token string
		optional    bool
	}{
		{"view_all", k.ViewAll, false},
		{"mark_done", k.MarkDone, false},
		{"remove", k.Remove, false},
		{"view_pending", k.ViewPending, false},
		{"view_done", k.ViewDone, false},
		{"quit", k.Quit, true},
	} {
		if b.token == "" {
			if b.optional {
				continue
			}
			return fmt.Errorf("keys.%s must not be empty", b.name)
		}
		if other, ok := seen[b.token]; ok {
			return fmt.Errorf("keys.%s reuses %q from keys.%s", b.name, b.token, other)
		}
		seen[b.token] = b.name
	}
	return nil
}

func Default() Config {
	return Config{
		Store:    StoreMemory,
		UI:       UIAuto,
		Color:    true,
		LogLevel: "info",
		Keys: Keymap{
			ViewAll:     "a",
			MarkDone:    "d",
			Remove:      "r",
			ViewPending: "t",
			ViewDone:    "v",
		},
	}
}
