package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/wayfinder/pkg/cli/config"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, nil, nil)
}

// run is Run with replaceable terminal streams; nil keeps stdin and stdout
func run(ctx context.Context, args []string, version string, r io.Reader, w io.Writer) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "wayfinder",
		Usage:   "WayFinder (A-Vision) context-affect-guidance dialog engine",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting wayfinder", "logger", loggerCfg, "sentry", sentryCfg.LogAttrs())
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdChat(),
			cmdProfile(),
			cmdFacts(),
		},
	}

	if r != nil {
		app.Reader = r
	}
	if w != nil {
		app.Writer = w
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
