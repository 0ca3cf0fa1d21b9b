// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/zhpersona/internal/platform/cmd"
	"github.com/louisbranch/zhpersona/internal/platform/config"
	mcpservice "github.com/louisbranch/zhpersona/internal/services/mcp/service"
	"github.com/louisbranch/zhpersona/internal/services/persona/app"
)

// Config holds MCP command configuration.
type Config struct {
	app.Config

	HTTPAddr  string `env:"PERSONA_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"PERSONA_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup config.EnvLookup) (Config, error) {
	var cfg Config
	keys := append([]string{"PERSONA_MCP_HTTP_ADDR", "PERSONA_MCP_TRANSPORT"}, app.EnvKeys...)
	if err := entrypoint.ParseConfig(&cfg, lookup, keys...); err != nil {
		return Config{}, err
	}

	app.RegisterFlags(fs, &cfg.Config)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		rt, err := app.New(cfg.Config, nil)
		if err != nil {
			return err
		}
		return mcpservice.Run(ctx, mcpservice.Config{
			Transport: mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
		}, rt.Assembler, rt.Datasets)
	})
}
