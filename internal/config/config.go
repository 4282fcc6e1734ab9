// Package config loads the optional mvln configuration file: YAML with
// environment variable expansion and rule-based validation. Every value
// has a built-in default, and command-line flags override whatever the
// file says.
package config

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the tool configuration.
type Config struct {
	// LogLevel is the default log level; --verbose lowers it to debug.
	LogLevel slog.Level `yaml:"log_level"`

	Move  MoveConfig  `yaml:"move"`
	Usage UsageConfig `yaml:"usage"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Move.Validate(); err != nil {
		return err
	}
	return c.Usage.Validate()
}

// MoveConfig holds defaults for the move command.
type MoveConfig struct {
	// Depth is the default maximum search depth for affected links.
	Depth int `yaml:"depth"`
}

// Validate validates the move configuration.
func (c *MoveConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Depth, validation.Min(0)),
	)
}

// UsageConfig holds defaults for the du command.
type UsageConfig struct {
	// Mode selects which devices du queries when no argument is given.
	Mode string `yaml:"mode"`

	// TimeoutSeconds bounds each external command du runs.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// RootReserved is the fraction of the root and home filesystems
	// charged as used on top of what df reports.
	RootReserved float64 `yaml:"root_reserved"`
}

// Validate validates the du configuration.
func (c *UsageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.In("local", "adb", "both")),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
		validation.Field(&c.RootReserved, validation.Min(0.0), validation.Max(1.0)),
	)
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		LogLevel: slog.LevelWarn,
		Move: MoveConfig{
			Depth: 5,
		},
		Usage: UsageConfig{
			Mode:           "both",
			TimeoutSeconds: 2,
		},
	}
}
