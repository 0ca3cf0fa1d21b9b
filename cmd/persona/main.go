// Package main provides a CLI that prints synthetic Chinese personas as text
// or JSON.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	personacmd "github.com/louisbranch/zhpersona/internal/cmd/persona"
	entrypoint "github.com/louisbranch/zhpersona/internal/platform/cmd"
	"github.com/louisbranch/zhpersona/internal/platform/config"
)

func main() {
	cfg, err := personacmd.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServicePersona))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePersona, func(ctx context.Context) error {
		return personacmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		log.Fatalf("generate personas: %v", err)
	}
}
