package main

import (
	"context"
	"fmt"
	"os"

	"github.com/geoq-cli/geoq/internal/cli"
	"github.com/geoq-cli/geoq/internal/commands"
	"github.com/geoq-cli/geoq/internal/config"
	"github.com/geoq-cli/geoq/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "geoq: %v\n", err)
		os.Exit(cli.ExitFailure)
	}
	log.Configure(log.Config{Level: cfg.Log.Level})

	env := commands.Env{
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Config: cfg,
		Log:    log.Base(),
	}
	os.Exit(cli.NewRegistry().Run(context.Background(), env, os.Args[1:]))
}
