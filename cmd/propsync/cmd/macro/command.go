// Package macro provides the macro command implementation.
package macro

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propsync/propsync/internal/cmd/application"
	"github.com/propsync/propsync/internal/dbt"
)

// NewCommand creates the macro command using app context.
func NewCommand(_ application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "macro",
		GroupID: "utility",
		Short:   "Print the helper macro used for column introspection",
		Long: `Macro prints the dbt macro the update command uses to read column
lists out of the warehouse, so it can be reviewed or installed by hand.`,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Print(dbt.MacroSource())
		},
	}
}
