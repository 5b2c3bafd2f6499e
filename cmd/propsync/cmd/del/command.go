// Package del provides the delete command implementation.
package del

import (
	"github.com/spf13/cobra"

	"github.com/propsync/propsync/internal/cmd/application"
	"github.com/propsync/propsync/internal/cmd/flags"
	"github.com/propsync/propsync/pkg/builder"
	"github.com/propsync/propsync/pkg/catalog"
)

// NewCommand creates the delete command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var dbtFlags flags.DBT

	cmd := &cobra.Command{
		Use:     "delete",
		GroupID: "properties",
		Short:   "Delete the property files of selected resources",
		Long: `Delete removes the property file of every selected resource.

The files to be deleted are listed first and nothing is removed until
the deletion is explicitly confirmed. Resources without a property file
are skipped.`,
		Example: `  propsync delete                           # Delete all property files
  propsync delete --models customers        # Delete one model's file
  propsync delete --select staging          # Delete by selector`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			project, err := dbtFlags.Project()
			if err != nil {
				return err
			}

			resources, err := catalog.List(ctx, app.Runner(), project, dbtFlags.Selection, dbtFlags.Options, logger)
			if err != nil {
				return err
			}

			return builder.DeleteAll(resources, project.Path, app.Prompter(), logger)
		},
	}

	dbtFlags.Register(cmd)

	return cmd
}
