// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the inflightd configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadDefault looks for the configuration file.
const DefaultPath = "inflightd.yaml"

// Duration is a time.Duration that unmarshals from YAML strings such as
// "30s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the top-level daemon configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Await   AwaitConfig   `yaml:"await"`
	Monitor MonitorConfig `yaml:"monitor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AwaitConfig holds await registry settings.
type AwaitConfig struct {
	// InterruptOnStop controls whether shutdown force-releases goroutines
	// still parked when the daemon stops (default: true).
	InterruptOnStop bool `yaml:"interrupt_on_stop"`
}

// MonitorConfig holds stall monitor settings.
type MonitorConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Every     Duration `yaml:"every"`      // scan interval (default: 30s)
	WarnAfter Duration `yaml:"warn_after"` // wait duration worth reporting (default: 5m)
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Await: AwaitConfig{
			InterruptOnStop: true,
		},
		Monitor: MonitorConfig{
			Enabled:   true,
			Every:     Duration(30 * time.Second),
			WarnAfter: Duration(5 * time.Minute),
		},
	}
}

// Load reads a YAML configuration file at path and returns a Config.
// Settings absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath. If the file does not exist, it returns
// the defaults.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}
