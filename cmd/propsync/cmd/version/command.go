// Package version provides the version command implementation.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/propsync/propsync/internal/cmd/application"
)

// NewCommand creates the version command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "utility",
		Short:   "Show version information",
		Long:    `Show version information for the propsync CLI.`,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("propsync version %s\n", app.Version())
			fmt.Printf("commit: %s\n", app.Commit())
			fmt.Printf("built: %s\n", app.Date())
			fmt.Printf("go version: %s\n", runtime.Version())
			fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
