// Package config provides configuration management for the leapstep CLI.
//
// It layers the shared export settings from internal/config with the
// CLI-only fields: ledger location, output format and verbosity.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapstep/internal/config"
)

// ExportConfig is an alias for the shared export settings.
type ExportConfig = sharedcfg.ExportConfig

// Config holds all CLI configuration options.
type Config struct {
	ExportConfig `koanf:",squash"`

	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	ProjectRoot  string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultStateFile = sharedcfg.DefaultStateFile
	DefaultOutput    = sharedcfg.DefaultOutput
)

var outputFormats = map[string]bool{"auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.ExportConfig.Validate(); err != nil {
		return err
	}
	if !outputFormats[c.OutputFormat] {
		return &InvalidOutputError{Value: c.OutputFormat}
	}
	return nil
}

// InvalidOutputError reports an unknown output format.
type InvalidOutputError struct {
	Value string
}

func (e *InvalidOutputError) Error() string {
	return "invalid output format: " + e.Value + ", must be one of: auto, text, markdown, json"
}
