package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes for diagnostics.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the run configuration read from vela.yaml.
//
//	max_depth: 5000
//	trace: true
//	color: never
//	stdlib: false
type Config struct {
	// MaxDepth bounds evaluator nesting. Zero means MaxEvalDepth.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Trace enables debug records for calls and struct instantiation.
	Trace bool `yaml:"trace,omitempty"`

	// Color is one of auto, always, never. Defaults to auto.
	Color string `yaml:"color,omitempty"`

	// Stdlib registers the standard builtins and constants in the root
	// context. Defaults to true.
	Stdlib *bool `yaml:"stdlib,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a vela.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses vela.yaml content. The path is used only in error
// messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// FindConfig looks for vela.yaml in dir. It returns an empty path and no
// error when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	candidate := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	return nil
}

// UseStdlib reports whether the standard builtins should be registered.
func (c *Config) UseStdlib() bool {
	return c.Stdlib == nil || *c.Stdlib
}

func (c *Config) setDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = MaxEvalDepth
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
}
