// Package config loads devport's optional configuration file.
//
// The file may be YAML (.yaml, .yml) or JSON with comments (.json, .jsonc).
// Values not present in the file keep their defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/devport/internal/logger"
	"github.com/shinji-kodama/devport/internal/model"
)

// ─── struct ───────────────────────────────────────────────────────────────────

// Config holds all runtime configuration for devport.
type Config struct {
	// Start and End bound the default range used by "find" without arguments.
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`

	// Direction is "asc" or "desc".
	Direction string `yaml:"direction" json:"direction"`

	// ProbeHost is the address bind probes use.
	ProbeHost string `yaml:"probe_host" json:"probe_host"`

	// Docker adds ports published by running containers to the snapshot.
	Docker bool `yaml:"docker" json:"docker"`

	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// ─── defaults ─────────────────────────────────────────────────────────────────

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Start:     model.FirstServicePort,
		End:       model.LastServicePort,
		Direction: model.Ascending.String(),
		ProbeHost: "127.0.0.1",
		Docker:    false,
		LogLevel:  "warn",
	}
}

// DefaultPath returns ~/.devport.yaml, or "" when the home directory is
// unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".devport.yaml")
}

// ─── load ─────────────────────────────────────────────────────────────────────

// Load reads a config file and merges it onto the defaults.
//
// With an empty path the default location is tried, and a missing file
// there is not an error. An explicit path that does not exist is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data onto the defaults. ext selects the format: ".json" and
// ".jsonc" are JSON with comments and trailing commas, anything else is YAML.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// ─── validation ───────────────────────────────────────────────────────────────

// Validate checks the range, direction, probe host and log level.
func (c Config) Validate() error {
	if _, err := c.Range(); err != nil {
		return err
	}
	if _, err := model.ParseDirection(c.Direction); err != nil {
		return err
	}
	// Probes bind once per candidate, so a hostname here would mean one
	// resolver lookup per port.
	if c.ProbeHost != "" && net.ParseIP(c.ProbeHost) == nil {
		return fmt.Errorf("invalid probe_host %q: must be an IP address", c.ProbeHost)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Range returns the configured default scan range.
func (c Config) Range() (model.PortRange, error) {
	return model.NewPortRange(c.Start, c.End)
}

// ScanDirection returns the configured direction, falling back to Ascending
// when the value does not parse.
func (c Config) ScanDirection() model.Direction {
	d, err := model.ParseDirection(c.Direction)
	if err != nil {
		return model.Ascending
	}
	return d
}
