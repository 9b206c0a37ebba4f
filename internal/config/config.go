// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Sync   SyncConfig   `yaml:"sync"`
	UI     UIConfig     `yaml:"ui"`
}

// ServerConfig points the client at a blob store and profile.
type ServerConfig struct {
	// BaseURL of the blob store, e.g. "http://localhost:3000".
	BaseURL string `yaml:"base_url"`

	// Profile scopes every persisted artifact on the store.
	Profile string `yaml:"profile"`
}

// SyncConfig holds the timing knobs of the reconciliation loops. The pull
// cooldown is deliberately longer than the push debounce so a local edit's
// push lands before the next poll is allowed to pull.
type SyncConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	PushDebounce  time.Duration `yaml:"push_debounce"`
	PullCooldown  time.Duration `yaml:"pull_cooldown"`
	SchedulerTick time.Duration `yaml:"scheduler_tick"`
	SurvivalTick  time.Duration `yaml:"survival_tick"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode bool `yaml:"vim_mode"`

	// ViewportWidth/Height define the shared coordinate space notes are
	// clamped into. Graphical clients use their window size; the TUI uses a
	// fixed virtual desktop so positions stay meaningful across clients.
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:3000",
			Profile: "default",
		},
		Sync: SyncConfig{
			PollInterval:  15 * time.Second,
			PushDebounce:  2 * time.Second,
			PullCooldown:  5 * time.Second,
			SchedulerTick: time.Minute,
			SurvivalTick:  10 * time.Second,
		},
		UI: UIConfig{
			VimMode:        true,
			ViewportWidth:  1920,
			ViewportHeight: 1080,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "sproutdesk")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// StatePath returns the full path to the locally persisted state copy.
func StatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// Load reads the configuration from the config file.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.fillDefaults()

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fillDefaults substitutes defaults for zeroed timing and viewport fields so
// a hand-edited partial config file still yields a working setup.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.Profile == "" {
		c.Server.Profile = def.Server.Profile
	}
	if c.Sync.PollInterval <= 0 {
		c.Sync.PollInterval = def.Sync.PollInterval
	}
	if c.Sync.PushDebounce <= 0 {
		c.Sync.PushDebounce = def.Sync.PushDebounce
	}
	if c.Sync.PullCooldown <= 0 {
		c.Sync.PullCooldown = def.Sync.PullCooldown
	}
	if c.Sync.SchedulerTick <= 0 {
		c.Sync.SchedulerTick = def.Sync.SchedulerTick
	}
	if c.Sync.SurvivalTick <= 0 {
		c.Sync.SurvivalTick = def.Sync.SurvivalTick
	}
	if c.UI.ViewportWidth <= 0 {
		c.UI.ViewportWidth = def.UI.ViewportWidth
	}
	if c.UI.ViewportHeight <= 0 {
		c.UI.ViewportHeight = def.UI.ViewportHeight
	}
}
