package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"github.com/georgemunganga/gluto-backend/internal/server"
)

// gluto serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := boot()
		if err != nil {
			return err
		}

		app, err := server.Open(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           app.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		go func() {
			log.Info("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.StoreDriver)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server failed", "error", err)
				os.Exit(1)
			}
		}()

		wait := gfshutdown.GracefulShutdown(
			context.Background(),
			cfg.ShutdownTimeout,
			map[string]gfshutdown.Operation{
				"http-server": func(ctx context.Context) error {
					log.Info("shutting down server")
					if err := srv.Shutdown(ctx); err != nil {
						return err
					}
					return app.Close(ctx)
				},
			},
		)

		exitCode := <-wait
		log.Info("server stopped", "exit_code", exitCode)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}
