package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	httpctrl "github.com/secmon-lab/wayfinder/pkg/controller/http"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var origins []string
	var engine engineConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("WAYFINDER_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "Origin allowed to open websocket sessions (repeatable, any origin when unset)",
			Sources:     cli.EnvVars("WAYFINDER_ALLOWED_ORIGINS"),
			Destination: &origins,
		},
	}
	engine.llm.ExplicitProvider()
	flags = append(flags, engine.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP and websocket server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := engine.build(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			var httpOpts []httpctrl.Options
			if len(origins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithAllowedOrigins(origins...))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Dialog, uc.Profile, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// in-flight turns finish before the repository is closed
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
