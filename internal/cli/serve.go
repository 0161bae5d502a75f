package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nodedoc/nodedoc/internal/server"
	"github.com/nodedoc/nodedoc/pkg/persist"
)

// newServeCmd creates the serve command: run the document HTTP API
// over the configured store until interrupted.
func newServeCmd() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the document HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           server.New(st, serverLogger(logger), persist.Options{}).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Infof("serving on http://%s (%s backend)", cfg.Listen, cfg.Store)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().StringVar(&listen, "listen", "", "bind address (overrides config)")
	return cmd
}

// serverLogger derives a prefixed logger for the HTTP server.
func serverLogger(l *charmlog.Logger) *charmlog.Logger {
	sub := l.With()
	sub.SetPrefix("http")
	return sub
}
