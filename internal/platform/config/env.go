package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvLookup loads configuration from the given lookup instead of the
// process environment. Only the listed keys are consulted.
func ParseEnvLookup(target any, lookup EnvLookup, keys ...string) error {
	if lookup == nil {
		return ParseEnv(target)
	}
	environment := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := lookup(key); ok {
			environment[key] = strings.TrimSpace(value)
		}
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
