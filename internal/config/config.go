package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/joyview/pkg/joystick"
)

// Config stores joyview settings.
type Config struct {
	Backend        string   `yaml:"backend"`
	Window         Window   `yaml:"window"`
	DarkMode       bool     `yaml:"dark_mode"`
	RefreshHz      int      `yaml:"refresh_hz"`
	RescanInterval Duration `yaml:"rescan_interval"`
	Profiles       string   `yaml:"profiles,omitempty"`
	LogLevel       string   `yaml:"log_level"`
}

// Window holds the initial window geometry in dp.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Duration is a time.Duration written as a Go duration string ("1s").
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend: string(joystick.DefaultKind()),
		Window: Window{
			Title:  "Joysticks",
			Width:  800,
			Height: 600,
		},
		RefreshHz:      60,
		RescanInterval: Duration(time.Second),
		LogLevel:       "info",
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !validBackend(c.Backend) {
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.RefreshHz <= 0 {
		return fmt.Errorf("config: refresh_hz %d must be positive", c.RefreshHz)
	}
	if c.RescanInterval <= 0 {
		return fmt.Errorf("config: rescan_interval %s must be positive", time.Duration(c.RescanInterval))
	}
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

func validBackend(name string) bool {
	for _, k := range joystick.Kinds {
		if string(k) == name {
			return true
		}
	}
	return false
}

// DefaultPath returns the platform config file location.
func DefaultPath() (string, error) {
	// Windows: %APPDATA%\joyview
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "joyview", "config.yaml"), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "joyview", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "joyview", "config.yaml"), nil
}

// Load reads filename over the defaults. A missing file is not an error.
// Values are not validated here so command-line overrides can still
// replace them; call Validate once overrides are applied.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration, creating the directory if needed.
func Save(filename string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0o644)
}

// Update applies fn to the settings stored in filename and writes them
// back. Only the file contents are changed, so command-line overrides
// active in the running process are not persisted.
func Update(filename string, fn func(*Config)) error {
	cfg, err := Load(filename)
	if err != nil {
		return err
	}
	fn(cfg)
	return Save(filename, cfg)
}
