// Package fill provides the fill command implementation.
package fill

import (
	"github.com/spf13/cobra"

	"github.com/propsync/propsync/internal/cmd/application"
	"github.com/propsync/propsync/internal/cmd/flags"
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/fill"
)

// NewCommand creates the fill command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var dbtFlags flags.DBT
	var source catalog.Selection

	cmd := &cobra.Command{
		Use:     "fill",
		GroupID: "properties",
		Short:   "Propagate column descriptions to undocumented columns",
		Long: `Fill copies column descriptions that already exist somewhere in the
project onto matching columns that lack one.

Descriptions are collected from the source selection (the whole project
by default, or narrowed with the --source-* flags) and applied to the
undocumented columns of the target selection. When different resources
describe the same column name differently, the command asks which
description to apply, or whether to skip the column.

Only property files are read and written; the warehouse is not
consulted.`,
		Example: `  propsync fill                             # Fill across the whole project
  propsync fill --models marts              # Fill the marts models only
  propsync fill --source-select staging     # Take descriptions from staging`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			project, err := dbtFlags.Project()
			if err != nil {
				return err
			}

			targets, err := catalog.List(ctx, app.Runner(), project, dbtFlags.Selection, dbtFlags.Options, logger)
			if err != nil {
				return err
			}

			sources, err := catalog.List(ctx, app.Runner(), project, source, dbtFlags.Options, logger)
			if err != nil {
				return err
			}

			engine := &fill.Engine{
				ProjectPath: project.Path,
				Prompter:    app.Prompter(),
				Logger:      logger,
			}
			_, err = engine.Run(sources, targets)
			return err
		},
	}

	dbtFlags.Register(cmd)

	fs := cmd.Flags()
	fs.StringVar(&source.ResourceType, "source-resource-type", "", "resource type for the description source selection")
	fs.StringVar(&source.Select, "source-select", "", "selector for the description source selection")
	fs.StringVar(&source.Models, "source-models", "", "models for the description source selection")
	fs.StringVar(&source.Exclude, "source-exclude", "", "exclusion for the description source selection")
	fs.StringVar(&source.Selector, "source-selector", "", "named selector for the description source selection")

	return cmd
}
