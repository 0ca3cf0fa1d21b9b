package mcp

import (
	"context"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.DataDir != "" || cfg.RulesFile != "" {
		t.Fatalf("expected embedded datasets and default rules, got %+v", cfg.Config)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	lookup := func(key string) (string, bool) {
		switch key {
		case "PERSONA_MCP_HTTP_ADDR":
			return "env-http", true
		case "PERSONA_DATA_DIR":
			return "/env/data", true
		case "PERSONA_AI_API_KEY":
			return " sk-env ", true
		default:
			return "", false
		}
	}
	args := []string{"-http-addr", "flag-http", "-transport", "http", "-rules", "rules.yaml"}
	cfg, err := ParseConfig(fs, args, lookup)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.DataDir != "/env/data" {
		t.Fatalf("expected env data dir, got %q", cfg.DataDir)
	}
	if cfg.RulesFile != "rules.yaml" {
		t.Fatalf("expected flag rules file, got %q", cfg.RulesFile)
	}
	if cfg.AIAPIKey != "sk-env" {
		t.Fatalf("expected trimmed env api key, got %q", cfg.AIAPIKey)
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	cfg := Config{Transport: "carrier-pigeon"}
	err := Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected unsupported transport error, got %v", err)
	}
}
