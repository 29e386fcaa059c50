// Package config loads client configuration from layered sources:
// built-in defaults, an optional YAML file, and environment variables,
// each overriding the last.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/xopy-io/saferequests/validation"
)

const (
	// DefaultFile is the YAML file consulted when present.
	DefaultFile = "saferequests.yaml"

	// EnvPrefix namespaces the environment variables read by Load,
	// e.g. SAFEREQUESTS_RETRY_LIMIT maps to retry.limit.
	EnvPrefix = "SAFEREQUESTS_"
)

// Load reads configuration with priority:
// 1. Environment variables (highest)
// 2. DefaultFile, when it exists
// 3. Built-in defaults (lowest)
func Load() (*Config, error) {
	return LoadFile(DefaultFile)
}

// LoadFile is Load with an explicit YAML file path. A missing file is
// not an error; the defaults and environment still apply.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(envprovider.Provider(".", envprovider.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return unmarshal(k)
}

// LoadBytes reads configuration from raw YAML layered over the
// defaults. Environment variables do not apply; intended for tests and
// embedded configuration.
func LoadBytes(data []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config bytes: %w", err)
	}

	return unmarshal(k)
}

// envKey maps an environment variable to its config key. Only the
// first underscore separates the section from the field, so key names
// keep their own underscores: SAFEREQUESTS_RETRY_MAX_EXP_BACKOFF maps
// to retry.max_exp_backoff, not retry.max.exp.backoff.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, field, found := strings.Cut(key, "_")
	if !found {
		return key, value
	}
	return section + "." + field, value
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validation.NewValidator().Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"retry.delay":           "1s",
		"retry.limit":           10,
		"retry.exp_backoff":     false,
		"retry.max_exp_backoff": "60s",
		"retry.retry_on_error":  false,

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
