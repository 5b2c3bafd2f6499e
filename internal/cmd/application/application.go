// Package application provides the application interface for propsync
// commands. Commands accept this interface rather than the concrete App
// type, which keeps them testable with mock implementations.
package application

import (
	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/internal/prompt"
)

// Application provides the dependencies commands need.
type Application interface {
	// Logger returns the configured logger instance. Commands should
	// use this for all diagnostic output.
	Logger() *zerolog.Logger

	// Runner returns the dbt command runner.
	Runner() dbt.Runner

	// Prompter returns the interactive confirmation provider.
	Prompter() prompt.Prompter

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string
}
