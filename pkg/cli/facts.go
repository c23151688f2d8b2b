package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/cli/config"
	"github.com/secmon-lab/wayfinder/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFacts() *cli.Command {
	var userID string
	var query string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Aliases:     []string{"u"},
			Usage:       "User ID whose facts are searched",
			Required:    true,
			Sources:     cli.EnvVars("WAYFINDER_USER"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Search query",
			Required:    true,
			Destination: &query,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "facts",
		Usage: "Search remembered facts and print the prompt context they produce",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer closeRepository(repo)

			uc := usecase.New(repo)
			return showFacts(ctx, uc, userID, query, c.Root().Writer)
		},
	}
}

func showFacts(ctx context.Context, uc *usecase.UseCases, userID, query string, w io.Writer) error {
	rendered, err := uc.Profile.RenderFacts(ctx, userID, query)
	if err != nil {
		return err
	}
	if rendered == "" {
		labelColor.Fprintln(w, "  (ничего не найдено)")
		return nil
	}
	fmt.Fprint(w, rendered)
	return nil
}
