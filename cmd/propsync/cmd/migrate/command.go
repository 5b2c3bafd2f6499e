// Package migrate provides the migrate command implementation.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propsync/propsync/internal/cmd/application"
	"github.com/propsync/propsync/internal/cmd/flags"
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/migrate"
)

// NewCommand creates the migrate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var dbtFlags flags.DBT
	var manifestPath string

	cmd := &cobra.Command{
		Use:     "migrate",
		GroupID: "properties",
		Short:   "Split shared property files into one file per resource",
		Long: `Migrate restructures legacy property files that describe several
resources into the one-file-per-resource layout the other commands
maintain.

The project manifest associates each selected resource with the file
currently documenting it. Each resource's entry is moved verbatim into
a new file next to the resource's defining file; existing files are
never overwritten. Source files are rewritten with their remaining
entries, or deleted once only the version marker remains.

Run "dbt compile" (or any command that writes the manifest) before
migrating so the manifest reflects the current project.`,
		Example: `  propsync migrate                          # Migrate the whole project
  propsync migrate --models legacy          # Migrate a selection
  propsync migrate --manifest target/manifest.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			project, err := dbtFlags.Project()
			if err != nil {
				return err
			}

			if manifestPath == "" {
				manifestPath = project.ManifestPath()
			}
			manifest, err := migrate.LoadManifest(manifestPath)
			if err != nil {
				return err
			}

			resources, err := catalog.List(ctx, app.Runner(), project, dbtFlags.Selection, dbtFlags.Options, logger)
			if err != nil {
				return err
			}

			plan := migrate.BuildPlan(manifest, resources, project.Path)
			summary := migrate.Run(plan, logger)
			if summary.Failed > 0 {
				return fmt.Errorf("%d resources failed to migrate", summary.Failed)
			}
			return nil
		},
	}

	dbtFlags.Register(cmd)
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to manifest.json (default: <target-path>/manifest.json)")

	return cmd
}
