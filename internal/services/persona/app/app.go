// Package app wires datasets, rules, metrics and the assembler for the
// persona commands.
package app

import (
	"flag"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/louisbranch/zhpersona/internal/services/persona"
	"github.com/louisbranch/zhpersona/internal/services/persona/dataset"
	"github.com/louisbranch/zhpersona/internal/services/persona/demographic"
	"github.com/louisbranch/zhpersona/internal/services/persona/metrics"
)

// Config holds the settings shared by every persona command.
type Config struct {
	DataDir       string `env:"PERSONA_DATA_DIR"`
	RulesFile     string `env:"PERSONA_RULES_FILE"`
	AIAPIKey      string `env:"PERSONA_AI_API_KEY"`
	AIBaseURL     string `env:"PERSONA_AI_BASE_URL"`
	AIModel       string `env:"PERSONA_AI_MODEL"`
	AIImageAPIKey string `env:"PERSONA_AI_IMAGE_API_KEY"`
	AIImageURL    string `env:"PERSONA_AI_IMAGE_URL"`
	AIImageModel  string `env:"PERSONA_AI_IMAGE_MODEL"`
}

// EnvKeys lists the environment variables read into Config.
var EnvKeys = []string{
	"PERSONA_DATA_DIR",
	"PERSONA_RULES_FILE",
	"PERSONA_AI_API_KEY",
	"PERSONA_AI_BASE_URL",
	"PERSONA_AI_MODEL",
	"PERSONA_AI_IMAGE_API_KEY",
	"PERSONA_AI_IMAGE_URL",
	"PERSONA_AI_IMAGE_MODEL",
}

// RegisterFlags binds the shared flags, defaulting to the values already in cfg.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding dataset overrides (default: embedded tables)")
	fs.StringVar(&cfg.RulesFile, "rules", cfg.RulesFile, "YAML file overriding the demographic rules")
}

// AI returns the collaborator settings used when a call names none.
func (c Config) AI() persona.AIConfig {
	return persona.AIConfig{
		APIKey:      c.AIAPIKey,
		BaseURL:     c.AIBaseURL,
		Model:       c.AIModel,
		ImageAPIKey: c.AIImageAPIKey,
		ImageURL:    c.AIImageURL,
		ImageModel:  c.AIImageModel,
	}
}

// Runtime is a ready-to-use generator plus the pieces surfaces report on.
type Runtime struct {
	Assembler *persona.Assembler
	Datasets  *dataset.Bundle
	Metrics   *metrics.Metrics
}

// New loads rules and geography and builds the assembler. Metrics register
// on reg; nil uses the default registerer.
func New(cfg Config, reg prometheus.Registerer) (*Runtime, error) {
	m := metrics.New(reg)
	bundle := dataset.New(dataset.Options{
		Dir: strings.TrimSpace(cfg.DataDir),
		OnDegraded: func(name string, _ error) {
			m.IncrementDegraded(name)
		},
	})
	if err := bundle.Preload(); err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	var rules *demographic.Rules
	if path := strings.TrimSpace(cfg.RulesFile); path != "" {
		loaded, err := demographic.LoadRulesFile(path)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		rules = &loaded
	}

	return &Runtime{
		Assembler: persona.New(persona.Config{
			Datasets: bundle,
			Rules:    rules,
			Metrics:  m,
			AI:       cfg.AI(),
		}),
		Datasets: bundle,
		Metrics:  m,
	}, nil
}
