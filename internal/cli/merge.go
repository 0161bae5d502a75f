package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nodedoc/nodedoc/pkg/graph"
	pkgio "github.com/nodedoc/nodedoc/pkg/io"
	"github.com/nodedoc/nodedoc/pkg/persist"
)

// parseOffset parses an "x,y" flag value into a vector.
func parseOffset(s string) (graph.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return graph.Vec2{}, fmt.Errorf("offset must be x,y, got %q", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if errX != nil || errY != nil {
		return graph.Vec2{}, fmt.Errorf("offset must be x,y, got %q", s)
	}
	return graph.Vec2{X: float32(x), Y: float32(y)}, nil
}

// newMergeCmd creates the merge command: import one document into
// another with fresh identifiers and a positional offset.
func newMergeCmd() *cobra.Command {
	var (
		output    string
		offsetStr string
	)

	cmd := &cobra.Command{
		Use:   "merge <target> <incoming>",
		Short: "Merge a document into another with conflict-free IDs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			offset, err := parseOffset(offsetStr)
			if err != nil {
				return err
			}

			target, err := pkgio.ReadFile(args[0], persist.Options{})
			if err != nil {
				return err
			}
			incoming, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			added, err := pkgio.ImportInto(target, string(incoming), offset, persist.Options{})
			if err != nil {
				return err
			}
			logger.Infof("merged %d nodes into %s", len(added), target.ID())

			if output == "" {
				output = args[0]
			}
			if err := pkgio.WriteFile(target, output, persist.Options{}); err != nil {
				return err
			}
			logger.Infof("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (overwrites target if empty)")
	cmd.Flags().StringVar(&offsetStr, "offset", "40,40", "position offset applied to merged nodes (x,y)")
	return cmd
}
