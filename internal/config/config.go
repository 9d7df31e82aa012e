// Package config defines the RangeSlider demo configuration format and helpers
// for loading or saving it to disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edward-ap/rangeslider/internal/preset"
	"github.com/edward-ap/rangeslider/internal/slider"
)

const (
	// AppID is the stable application identifier used for config storage.
	AppID = "rangeslider"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "RangeSlider"
	// AppConfigName is the JSON file stored on disk.
	AppConfigName = "config.json"

	// DefaultWidth is the preferred window width when no persisted value exists.
	DefaultWidth = 520
	// DefaultHeight is the preferred window height.
	DefaultHeight = 360
	// MinWindowWidth keeps the control column visible next to the slider.
	MinWindowWidth = 420
	// DefaultPreset is selected on first launch.
	DefaultPreset = "Percent"
)

// ErrUnsupportedFormat is returned for config files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config aggregates every user-facing preference persisted between sessions.
type Config struct {
	Slider        slider.State    `json:"slider" yaml:"slider"`
	LastPreset    string          `json:"lastPreset" yaml:"lastPreset"`
	WindowW       int             `json:"windowW" yaml:"windowW"`
	WindowH       int             `json:"windowH" yaml:"windowH"`
	CustomPresets []preset.Preset `json:"customPresets,omitempty" yaml:"customPresets,omitempty"`
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to config.json.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// Load reads the config from the default location, creating it with defaults
// on first run.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := NewDefault()
			// Try saving an initial config, but still return defaults even if it fails.
			_ = cfg.Save()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a JSON or YAML config, chosen by extension. Fields missing
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewDefault()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	cfg.applyRuntimeDefaults()
	return cfg, nil
}

// Save persists the configuration to the default location.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the configuration to path, creating directories as needed.
// The encoding follows the extension; anything but .yaml/.yml is JSON.
func (c *Config) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var (
		b   []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(c)
	default:
		b, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// AppID returns the stable identifier used by the GUI framework.
func (c *Config) AppID() string { return AppID }

// Presets returns the bundled presets followed by the user's own.
func (c *Config) Presets() []preset.Preset {
	out := preset.DefaultPresets()
	return append(out, c.CustomPresets...)
}

// UpsertPreset stores p among the custom presets, replacing one with the same
// name (case-insensitive).
func (c *Config) UpsertPreset(p preset.Preset) {
	for i := range c.CustomPresets {
		if strings.EqualFold(c.CustomPresets[i].Name, p.Name) {
			c.CustomPresets[i] = p
			return
		}
	}
	c.CustomPresets = append(c.CustomPresets, p)
}

// DeletePreset removes the custom preset called name and reports whether it existed.
func (c *Config) DeletePreset(name string) bool {
	for i := range c.CustomPresets {
		if strings.EqualFold(c.CustomPresets[i].Name, name) {
			c.CustomPresets = append(c.CustomPresets[:i], c.CustomPresets[i+1:]...)
			return true
		}
	}
	return false
}

// NewDefault builds an in-memory config populated with safe defaults.
func NewDefault() *Config {
	cfg := &Config{
		Slider:        slider.DefaultState(),
		LastPreset:    DefaultPreset,
		WindowW:       DefaultWidth,
		WindowH:       DefaultHeight,
		CustomPresets: []preset.Preset{},
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// applyRuntimeDefaults normalizes config values after a load or when defaults
// are constructed, ensuring the UI always receives sane inputs. Slider values
// are left to the model's own validation.
func (c *Config) applyRuntimeDefaults() {
	if c.WindowW == 0 {
		c.WindowW = DefaultWidth
	}
	if c.WindowW < MinWindowWidth {
		c.WindowW = MinWindowWidth
	}
	if c.WindowH <= 0 {
		c.WindowH = DefaultHeight
	}
	if strings.TrimSpace(c.LastPreset) == "" {
		c.LastPreset = DefaultPreset
	}
	if c.CustomPresets == nil {
		c.CustomPresets = []preset.Preset{}
	}
	kept := c.CustomPresets[:0]
	for _, p := range c.CustomPresets {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		kept = append(kept, p)
	}
	c.CustomPresets = kept
}
