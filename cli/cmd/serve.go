package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/malusev998/cbr-currency/server"
)

const (
	DefaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

func serve(config *Config) *cobra.Command {
	addr := config.Addr

	if addr == "" {
		addr = DefaultAddr
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rates over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.New(config.service, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errs := make(chan error, 1)

			go func() {
				logger.Info("listening", slog.String("addr", addr))
				errs <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errs:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				logger.Info("shutting down")

				return httpServer.Shutdown(ctx)
			}
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", addr, "Listen address")

	return serveCmd
}
