package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/nodedoc/nodedoc/pkg/io"
	"github.com/nodedoc/nodedoc/pkg/persist"
)

// newExtractCmd creates the extract command: export a sub-graph of a
// document, keeping only the named nodes and the edges between them.
func newExtractCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract <document> <nodeID>...",
		Short: "Extract a sub-graph containing only the given nodes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := pkgio.ReadFile(args[0], persist.Options{})
			if err != nil {
				return err
			}

			nodeIDs := args[1:]
			for _, id := range nodeIDs {
				if _, ok := g.Node(id); !ok {
					return fmt.Errorf("document has no node %q", id)
				}
			}

			subset := pkgio.ExportSubset(g, nodeIDs, persist.Options{})
			logger.Debugf("extracted %d of %d nodes", len(nodeIDs), g.NodeCount())

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), subset)
				return nil
			}
			if err := os.WriteFile(output, []byte(subset+"\n"), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Infof("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
