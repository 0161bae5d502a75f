package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nodedoc/nodedoc/pkg/buildinfo"
)

// Execute runs the nodedoc CLI and returns an error if any command
// fails. Logging defaults to info level; --verbose (-v) switches to
// debug. The logger is attached to the command context and accessible
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "nodedoc",
		Short:        "nodedoc inspects and manipulates node-graph documents",
		Long:         `nodedoc is a toolkit for the node-graph persistence format: validate documents, extract sub-graphs, merge documents into one another, and move them in and out of a document store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newPushCmd())
	root.AddCommand(newPullCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
