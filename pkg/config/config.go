package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "pomo"
	configFile = "config.yaml"

	ProviderTaskwarrior = "taskwarrior"
	ProviderMemory      = "memory"
)

type Config struct {
	// Calendar is the Google Calendar that receives finished intervals.
	Calendar string `yaml:"calendar"`
	// CalendarLog enables interval logging; it needs `pomo auth` first.
	CalendarLog bool `yaml:"calendar_log"`
	// Provider selects where tasks live.
	Provider      string        `yaml:"provider"`
	WorkDuration  time.Duration `yaml:"work_duration"`
	BreakDuration time.Duration `yaml:"break_duration"`
	// ContinueOnSwitch keeps a running session when another task is selected.
	ContinueOnSwitch bool   `yaml:"continue_on_switch"`
	LogFile          string `yaml:"log_file,omitempty"`
}

func Default() *Config {
	return &Config{
		Calendar:      "Pomodoro",
		Provider:      ProviderTaskwarrior,
		WorkDuration:  20 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}
}

// Dir is ~/.config/pomo. Credentials, token and caches live there too.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

// FileIn is the config file inside dir.
func FileIn(dir string) string {
	return filepath.Join(dir, configFile)
}

// Load reads the config at path. A missing file yields the defaults; fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that would make the timer meaningless.
func (c *Config) Validate() error {
	if c.WorkDuration < time.Second {
		return fmt.Errorf("work_duration must be at least 1s, got %s", c.WorkDuration)
	}
	if c.BreakDuration < time.Second {
		return fmt.Errorf("break_duration must be at least 1s, got %s", c.BreakDuration)
	}
	switch c.Provider {
	case ProviderTaskwarrior, ProviderMemory:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.CalendarLog && c.Calendar == "" {
		return errors.New("calendar_log needs a calendar name")
	}
	return nil
}
