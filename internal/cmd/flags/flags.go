// Package flags defines the resource-selection and dbt passthrough flags
// shared by every command that operates on a selection of resources.
package flags

import (
	"github.com/spf13/cobra"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/pkg/catalog"
)

// lsArgHelp matches the help dbt gives for its own ls arguments.
const lsArgHelp = `An argument for listing dbt resources (run "dbt ls --help" for details)`

// DBT bundles the selection and connection arguments a command passes
// through to dbt.
type DBT struct {
	Selection catalog.Selection
	Options   dbt.Options
}

// Register adds the shared selection and connection flags to a command.
func (f *DBT) Register(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringVar(&f.Selection.ResourceType, "resource-type", "", lsArgHelp)
	fs.StringVar(&f.Selection.Select, "select", "", lsArgHelp)
	fs.StringVar(&f.Selection.Models, "models", "", lsArgHelp)
	fs.StringVar(&f.Selection.Exclude, "exclude", "", lsArgHelp)
	fs.StringVar(&f.Selection.Selector, "selector", "", lsArgHelp)

	fs.StringVar(&f.Options.ProjectDir, "project-dir", "", lsArgHelp)
	fs.StringVar(&f.Options.ProfilesDir, "profiles-dir", "", lsArgHelp)
	fs.StringVar(&f.Options.Profile, "profile", "", lsArgHelp)
	fs.StringVar(&f.Options.Target, "target", "", lsArgHelp)
	fs.StringVar(&f.Options.Vars, "vars", "", lsArgHelp)
	fs.StringVar(&f.Options.State, "state", "", lsArgHelp)
}

// Project loads the dbt project the flags point at and pins the
// project directory option so later dbt calls resolve the same project.
func (f *DBT) Project() (*catalog.Project, error) {
	project, err := catalog.LoadProject(f.Options.ProjectDir)
	if err != nil {
		return nil, err
	}
	if f.Options.ProjectDir == "" {
		f.Options.ProjectDir = project.Path
	}
	return project, nil
}
