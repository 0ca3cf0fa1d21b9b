package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	apicmd "github.com/louisbranch/zhpersona/internal/cmd/api"
	entrypoint "github.com/louisbranch/zhpersona/internal/platform/cmd"
	"github.com/louisbranch/zhpersona/internal/platform/config"
)

// main starts the persona HTTP API.
func main() {
	cfg, err := apicmd.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceAPI))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := apicmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve API: %v", err)
	}
}
