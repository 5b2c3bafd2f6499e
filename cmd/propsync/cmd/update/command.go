// Package update provides the update command implementation.
package update

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propsync/propsync/internal/cmd/application"
	"github.com/propsync/propsync/internal/cmd/flags"
	"github.com/propsync/propsync/pkg/builder"
	"github.com/propsync/propsync/pkg/catalog"
)

// NewCommand creates the update command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var dbtFlags flags.DBT
	var threads int

	cmd := &cobra.Command{
		Use:     "update",
		GroupID: "properties",
		Short:   "Create or update property files from warehouse columns",
		Long: `Update creates or updates the property file of every selected resource.

For each resource, the command introspects the columns the warehouse
actually produces, then rewrites the resource's column list to match,
in warehouse order. Descriptions, tests, and any other metadata already
present on matching columns are preserved; columns the warehouse no
longer produces are removed.

Resources are processed concurrently up to --threads. A failure on one
resource never stops the others; all failures are reported together at
the end of the run.`,
		Example: `  propsync update                           # Update the whole project
  propsync update --models customers        # Update one model
  propsync update --select tag:nightly      # Update by selector
  propsync update --threads 8               # Update with 8 workers`,
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

			coordinator := &builder.Coordinator{
				Runner:   app.Runner(),
				Project:  project,
				Options:  dbtFlags.Options,
				Prompter: app.Prompter(),
				Logger:   logger,
				Threads:  threads,
			}
			summary, err := coordinator.Run(ctx, resources)
			if err != nil {
				return err
			}
			if summary.Failures > 0 {
				return fmt.Errorf("%d of %d resources failed", summary.Failures, summary.Total)
			}
			return nil
		},
	}

	dbtFlags.Register(cmd)
	cmd.Flags().IntVar(&threads, "threads", 1, "maximum number of concurrent resource updates")

	return cmd
}
