// Package main provides the entry point for the propsync CLI tool.
package main

import (
	"context"
	"os"

	"github.com/propsync/propsync/cmd/propsync/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Create app instance
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	// Execute with context
	app.ExitOnError(application.Execute(ctx, os.Args[1:]))
}
