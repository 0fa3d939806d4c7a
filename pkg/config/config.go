// Package config provides optional default-value overrides for the qimc
// CLI, loaded from a JSON file at ~/.config/qimc/config.json if present.
//
// Unlike a server daemon's configuration, nothing here is required: every
// field mirrors one of the CLI's own flag defaults, and a missing or
// absent config file simply leaves the built-in defaults in place. No
// environment variables or auto-discovery mechanisms are used.
//
// Example config file:
//
//	{
//	  "dedup": 256,
//	  "blur": 1,
//	  "sensitivity": 63,
//	  "trim": 0,
//	  "width": 512,
//	  "log_level": "info"
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds default overrides for qimc's CLI flags. Load starts from
// Defaults(): a field absent from the file keeps its built-in default,
// while a field the file sets explicitly (zero included) takes that value.
type Config struct {
	// Dedup is the default --dedup threshold.
	Dedup uint32 `json:"dedup"`

	// Blur is the default --blur radius.
	Blur float64 `json:"blur"`

	// Sensitivity is the default --sensitivity fraction numerator.
	Sensitivity uint32 `json:"sensitivity"`

	// Trim is the default --trim pass count.
	Trim int `json:"trim"`

	// Width is the default --width for image reconstruction.
	Width int `json:"width"`

	// LogLevel is a logging verbosity name, checked by Validate. Valid
	// values: "debug", "info", "warn", "error". The qimc command does not
	// read it: its log level comes from -v/-q alone (info otherwise).
	LogLevel string `json:"log_level"`
}

// Defaults returns the CLI's built-in flag defaults, used whenever no
// config file is present or a field is left unset in it.
func Defaults() Config {
	return Config{
		Dedup:       256,
		Blur:        1,
		Sensitivity: 63,
		Trim:        0,
		Width:       512,
		LogLevel:    "info",
	}
}

// Load reads the default config file at ~/.config/qimc/config.json,
// overlaying any fields it sets onto Defaults(). A missing file is not
// an error: Load returns Defaults() unchanged.
func Load() (Config, error) {
	cfg := Defaults()

	path := configFilePath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var overrides partialConfig
	if err := json.Unmarshal(data, &overrides); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	overrides.applyTo(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// partialConfig mirrors Config with pointer fields, so a field absent
// from the JSON document is distinguishable from one explicitly set to
// its zero value.
type partialConfig struct {
	Dedup       *uint32  `json:"dedup"`
	Blur        *float64 `json:"blur"`
	Sensitivity *uint32  `json:"sensitivity"`
	Trim        *int     `json:"trim"`
	Width       *int     `json:"width"`
	LogLevel    *string  `json:"log_level"`
}

func (p partialConfig) applyTo(c *Config) {
	if p.Dedup != nil {
		c.Dedup = *p.Dedup
	}
	if p.Blur != nil {
		c.Blur = *p.Blur
	}
	if p.Sensitivity != nil {
		c.Sensitivity = *p.Sensitivity
	}
	if p.Trim != nil {
		c.Trim = *p.Trim
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.LogLevel != nil {
		c.LogLevel = *p.LogLevel
	}
}

// Validate checks that overridden fields are within the ranges the CLI
// itself would accept.
func (c Config) Validate() error {
	if c.Blur < 0 {
		return fmt.Errorf("blur must be non-negative, got %v", c.Blur)
	}
	if c.Trim < 0 {
		return fmt.Errorf("trim must be non-negative, got %d", c.Trim)
	}
	if c.Width <= 0 || c.Width&(c.Width-1) != 0 {
		return fmt.Errorf("width must be a positive power of two, got %d", c.Width)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// configFilePath is a function variable so tests can override it.
var configFilePath = defaultConfigFilePath

func defaultConfigFilePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "qimc", "config.json")
}
