// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultOffset      = 1 // cells; the widget's own fallback is larger
	DefaultOpenDelay   = "150ms"
	DefaultCloseDelay  = "200ms"
	DefaultPlacement   = "top"
	DefaultTheme       = "default"
	DefaultIDGenerator = "ulid"
)

// ErrUnknownFormat is returned for encodings other than TOML and YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config represents the tooltui configuration.
type Config struct {
	Widget WidgetConfig `toml:"widget" yaml:"widget"`
	Hover  HoverConfig  `toml:"hover" yaml:"hover"`
	Theme  ThemeConfig  `toml:"theme" yaml:"theme"`
	Demo   DemoConfig   `toml:"demo" yaml:"demo"`
}

// WidgetConfig holds widget-level options shared by every tooltip.
type WidgetConfig struct {
	DisableFlip   bool   `toml:"disable_flip" yaml:"disable_flip"`
	DefaultOffset int    `toml:"default_offset" yaml:"default_offset"`
	IDGenerator   string `toml:"id_generator" yaml:"id_generator"` // ulid, uuid, sequence
}

// HoverConfig holds defaults for hover popups.
type HoverConfig struct {
	OpenDelay  string `toml:"open_delay" yaml:"open_delay"`   // Go duration, "0" = immediate
	CloseDelay string `toml:"close_delay" yaml:"close_delay"` // Go duration, "0" = immediate
	Enterable  bool   `toml:"enterable" yaml:"enterable"`
}

// ThemeConfig selects the overlay theme.
type ThemeConfig struct {
	Name string `toml:"name" yaml:"name"`
	Dir  string `toml:"dir" yaml:"dir"` // Empty = ~/.config/tooltui/themes
}

// DemoConfig holds settings for the demo TUI.
type DemoConfig struct {
	Placement   string `toml:"placement" yaml:"placement"`
	MouseMotion bool   `toml:"mouse_motion" yaml:"mouse_motion"`
	ShowHelp    bool   `toml:"show_help" yaml:"show_help"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Widget: WidgetConfig{
			DisableFlip:   false,
			DefaultOffset: DefaultOffset,
			IDGenerator:   DefaultIDGenerator,
		},
		Hover: HoverConfig{
			OpenDelay:  DefaultOpenDelay,
			CloseDelay: DefaultCloseDelay,
			Enterable:  true,
		},
		Theme: ThemeConfig{
			Name: DefaultTheme,
		},
		Demo: DemoConfig{
			Placement:   DefaultPlacement,
			MouseMotion: true,
			ShowHelp:    true,
		},
	}
}

// Delays parses the hover delays.
func (h HoverConfig) Delays() (open, close time.Duration, err error) {
	open, err = parseDelay(h.OpenDelay)
	if err != nil {
		return 0, 0, fmt.Errorf("open_delay: %w", err)
	}
	close, err = parseDelay(h.CloseDelay)
	if err != nil {
		return 0, 0, fmt.Errorf("close_delay: %w", err)
	}
	return open, close, nil
}

func parseDelay(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative delay %q", s)
	}
	return d, nil
}

// Validate checks values that cannot be expressed by the file format alone.
func (c *Config) Validate() error {
	if c.Widget.DefaultOffset < 0 {
		return fmt.Errorf("widget.default_offset must not be negative, got %d", c.Widget.DefaultOffset)
	}
	if _, _, err := c.Hover.Delays(); err != nil {
		return fmt.Errorf("hover.%w", err)
	}
	switch strings.ToLower(c.Demo.Placement) {
	case "", "top", "right", "bottom", "left":
	default:
		return fmt.Errorf("demo.placement: unknown placement %q", c.Demo.Placement)
	}
	return nil
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tooltui", "config.toml")
}

// FormatForPath returns "yaml" for .yaml/.yml files and "toml" otherwise.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := Unmarshal(data, FormatForPath(path), cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Unmarshal decodes data in the given format into cfg.
func Unmarshal(data []byte, format string, cfg *Config) error {
	switch format {
	case "toml":
		return toml.Unmarshal(data, cfg)
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Marshal encodes the configuration in the given format.
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "toml":
		return toml.Marshal(c)
	case "yaml":
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Encode writes the configuration to w in the given format.
func (c *Config) Encode(w io.Writer, format string) error {
	data, err := c.Marshal(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := c.Marshal(FormatForPath(path))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
