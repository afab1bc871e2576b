// Package config loads translator configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// TRANSLATE_TRANSLATOR_METERING_PREFIX sets translator.metering.prefix.
const EnvPrefix = "TRANSLATE_"

// Config is the root configuration.
type Config struct {
	Translator TranslatorConfig `koanf:"translator"`
}

// TranslatorConfig configures one translation pipeline.
type TranslatorConfig struct {
	// Isolation toggles best-effort element error isolation.
	// Unset means enabled.
	Isolation *bool `koanf:"isolation"`
	// Metering configures failure counters.
	Metering MeteringConfig `koanf:"metering"`
	// Stages is the stage sequence; executed in ascending Order.
	Stages []StageConfig `koanf:"stages"`
}

// MeteringConfig configures the failure-metering decorator.
type MeteringConfig struct {
	Enabled bool `koanf:"enabled"`
	// Prefix is the counter name prefix; counters are named
	// "<prefix>.<stage>.error". Empty means "translate".
	Prefix string `koanf:"prefix"`
}

// StageConfig configures a single stage.
type StageConfig struct {
	Name string `koanf:"name"`
	// Type is the registry lookup key for the stage factory.
	Type  string `koanf:"type"`
	Order int    `koanf:"order"`
	// Options are stage-type-specific settings.
	Options map[string]any `koanf:"options"`
}

// IsolationEnabled reports whether element error isolation is on,
// defaulting to true when unset.
func (c TranslatorConfig) IsolationEnabled() bool {
	return c.Isolation == nil || *c.Isolation
}

// Load reads configuration from path (skipped if path is empty or the
// file does not exist) and applies environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	// Environment overrides: TRANSLATE_TRANSLATOR_METERING_ENABLED etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Translator.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks stage names and types. Stage types are resolved
// against the registry at build time; only structural problems are
// caught here.
func (c TranslatorConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Stages))
	for _, s := range c.Stages {
		if s.Name == "" {
			return fmt.Errorf("stage with type %q has no name", s.Type)
		}
		if s.Type == "" {
			return fmt.Errorf("stage %s has no type", s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate stage name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
