// Package config handles jocks.toml and jocks.yaml settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"jocks/interpreter"
)

// File names Discover looks for, in order of preference.
var FileNames = []string{"jocks.toml", "jocks.yaml", "jocks.yml"}

type Config struct {
	// Nested calls allowed before a StackOverflow fault.
	MaxCallDepth int `toml:"max-call-depth" yaml:"max-call-depth"`
	// auto, always or never
	Color string `toml:"color" yaml:"color"`
	// commonlog verbosity, negative values silence logging.
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	LogFile   string `toml:"log-file" yaml:"log-file"`
	// REPL history, empty disables it.
	HistoryFile string `toml:"history-file" yaml:"history-file"`
	// text or yaml
	DiagnosticsFormat string `toml:"diagnostics-format" yaml:"diagnostics-format"`

	// Path the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

func Default() *Config {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".jocks_history")
	}

	return &Config{
		MaxCallDepth:      interpreter.DefaultMaxCallDepth,
		Color:             "auto",
		Verbosity:         -4,
		HistoryFile:       history,
		DiagnosticsFormat: "text",
	}
}

// Load reads a configuration file on top of the defaults, picking the
// decoder by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return nil, fmt.Errorf("unsupported configuration format %q for %s", ext, path)
	}

	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Path = path
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return c, nil
}

// Discover loads the first configuration file found in dir. Returns the
// defaults when there is none.
func Discover(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

func (c *Config) Validate() error {
	if c.MaxCallDepth <= 0 || c.MaxCallDepth > interpreter.MaxCallDepthLimit {
		return fmt.Errorf("max-call-depth must be between 1 and %d, got %d",
			interpreter.MaxCallDepthLimit, c.MaxCallDepth)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}

	switch c.DiagnosticsFormat {
	case "text", "yaml":
	default:
		return fmt.Errorf("diagnostics-format must be text or yaml, got %q", c.DiagnosticsFormat)
	}

	return nil
}
