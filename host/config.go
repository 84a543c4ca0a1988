// Package host wires the console to a real or remote panel: YAML
// configuration, the session pump that moves bytes between the link and
// the console tick, and atomic persistence of the operator settings.
package host

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the host console configuration. Exactly one of Device or URL
// selects the panel transport.
type Config struct {
	// Device is the serial port of the panel bridge.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	// URL is a websocket panel endpoint, used when Device is empty.
	URL string `yaml:"url"`

	// Profile is the JSON machine profile path.
	Profile string `yaml:"profile"`

	// SettingsFile persists the operator language/audio choices.
	SettingsFile string `yaml:"settings_file"`

	// RecordFile backs the recovery snapshot region.
	RecordFile string `yaml:"record_file"`

	LogLevel string `yaml:"log_level"`

	// TickMS is the console tick interval.
	TickMS int `yaml:"tick_ms"`
}

// LoadConfig reads, normalizes and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfig returns a config with every default applied and no
// transport selected.
func DefaultConfig() Config {
	var cfg Config
	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	if c.Baud == 0 {
		c.Baud = 115200
	}
	if c.TickMS == 0 {
		c.TickMS = 10
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.SettingsFile == "" {
		c.SettingsFile = "rekindle-settings.yaml"
	}
	if c.RecordFile == "" {
		c.RecordFile = "rekindle-recovery.bin"
	}
}

func (c *Config) validate() error {
	if c.Device != "" && c.URL != "" {
		return fmt.Errorf("config: device and url are mutually exclusive")
	}
	if c.Baud < 1200 {
		return fmt.Errorf("config: implausible baud rate %d", c.Baud)
	}
	if c.TickMS < 1 || c.TickMS > 1000 {
		return fmt.Errorf("config: tick_ms %d out of range [1,1000]", c.TickMS)
	}
	return nil
}
