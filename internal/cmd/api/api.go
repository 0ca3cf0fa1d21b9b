// Package api parses HTTP API flags and launches the service.
package api

import (
	"context"
	"flag"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	entrypoint "github.com/louisbranch/zhpersona/internal/platform/cmd"
	"github.com/louisbranch/zhpersona/internal/platform/config"
	apiservice "github.com/louisbranch/zhpersona/internal/services/api"
	"github.com/louisbranch/zhpersona/internal/services/persona/app"
)

// Config holds API command configuration.
type Config struct {
	app.Config

	Addr string `env:"PERSONA_API_ADDR" envDefault:"localhost:8090"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup config.EnvLookup) (Config, error) {
	var cfg Config
	keys := append([]string{"PERSONA_API_ADDR"}, app.EnvKeys...)
	if err := entrypoint.ParseConfig(&cfg, lookup, keys...); err != nil {
		return Config{}, err
	}
	app.RegisterFlags(fs, &cfg.Config)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the persona HTTP API.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAPI, func(ctx context.Context) error {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rt, err := app.New(cfg.Config, reg)
		if err != nil {
			return err
		}
		server, err := apiservice.NewServer(cfg.Addr, apiservice.NewHandler(rt.Assembler, rt.Datasets, reg).Router())
		if err != nil {
			return err
		}
		return server.ListenAndServe(ctx)
	})
}
