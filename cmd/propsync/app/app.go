// Package app provides the application context and dependency management
// for the propsync CLI. It centralizes configuration, logging, and the
// interactive prompter, following the dependency injection pattern.
package app

import (
	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/cmd/application"
	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/internal/prompt"
)

// App represents the propsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Collaborators
	runner   dbt.Runner
	prompter prompt.Prompter
}

// Ensure App implements the application interface at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version:  version,
		commit:   commit,
		date:     date,
		runner:   &dbt.ExecRunner{},
		prompter: prompt.NewTerminal(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Runner returns the dbt command runner.
func (a *App) Runner() dbt.Runner {
	return a.runner
}

// Prompter returns the interactive confirmation provider.
func (a *App) Prompter() prompt.Prompter {
	return a.prompter
}
