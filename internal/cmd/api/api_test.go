package api

import (
	"context"
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:8090" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	lookup := func(key string) (string, bool) {
		switch key {
		case "PERSONA_API_ADDR":
			return "env-addr", true
		case "PERSONA_RULES_FILE":
			return "/env/rules.yaml", true
		default:
			return "", false
		}
	}
	cfg, err := ParseConfig(fs, []string{"-addr", "127.0.0.1:9999", "-data-dir", "/flag/data"}, lookup)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected flag addr, got %q", cfg.Addr)
	}
	if cfg.DataDir != "/flag/data" {
		t.Fatalf("expected flag data dir, got %q", cfg.DataDir)
	}
	if cfg.RulesFile != "/env/rules.yaml" {
		t.Fatalf("expected env rules file, got %q", cfg.RulesFile)
	}
}

func TestRunFailsWithoutGeography(t *testing.T) {
	cfg := Config{Addr: "127.0.0.1:0"}
	cfg.DataDir = t.TempDir()
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error when the areas table is missing")
	}
}
