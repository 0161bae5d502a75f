package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodedoc/nodedoc/pkg/persist"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// newPushCmd creates the push command: validate a document file and
// store it under its own graph ID (or an explicit one).
func newPushCmd() *cobra.Command {
	var (
		configPath string
		docID      string
	)

	cmd := &cobra.Command{
		Use:   "push <document>",
		Short: "Store a document in the configured document store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			doc, err := wire.Unmarshal(string(data))
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if _, err := persist.Restore(doc, persist.Options{}); err != nil {
				return fmt.Errorf("validate %s: %w", args[0], err)
			}

			id := docID
			if id == "" {
				id = doc.ID
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Put(ctx, id, string(data)); err != nil {
				return err
			}
			logger.Infof("stored %s (%s backend)", id, cfg.Store)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().StringVar(&docID, "id", "", "store under this ID instead of the document's graph ID")
	return cmd
}

// newPullCmd creates the pull command: fetch a stored document and
// write it to a file or stdout.
func newPullCmd() *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "pull <id>",
		Short: "Fetch a document from the configured document store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}
			if err := os.WriteFile(output, []byte(doc+"\n"), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Infof("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// newListCmd creates the list command: print the IDs of all stored
// documents.
func newListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents in the configured document store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.List(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return cmd
}
