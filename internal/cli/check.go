package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodedoc/nodedoc/pkg/persist"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// newCheckCmd creates the check command: restore a document with
// diagnostics and report what a silent load would drop.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <document>",
		Short: "Validate a graph document and report dropped edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			doc, err := wire.Unmarshal(string(data))
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			g, diags, err := persist.RestoreWithDiagnostics(doc, persist.Options{})
			if err != nil {
				return fmt.Errorf("restore %s: %w", args[0], err)
			}

			logger.Infof("graph %s: %d nodes, %d edges, %d groups, %d comments, %d frames",
				g.ID(), g.NodeCount(), g.EdgeCount(),
				len(g.Groups()), len(g.Comments()), len(g.Frames()))

			for _, warning := range diags.Warnings {
				logger.Warn(warning)
			}
			if len(diags.DroppedEdges) == 0 {
				logger.Info("all edges resolved")
			}
			return nil
		},
	}
}
