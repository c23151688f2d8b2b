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

func cmdProfile() *cli.Command {
	var userID string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Aliases:     []string{"u"},
			Usage:       "User ID to show; lists all users when empty",
			Sources:     cli.EnvVars("WAYFINDER_USER"),
			Destination: &userID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "profile",
		Usage: "Show a stored user profile with its facts",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer closeRepository(repo)

			uc := usecase.New(repo)
			w := c.Root().Writer

			if userID == "" {
				users, err := uc.Profile.ListUsers(ctx)
				if err != nil {
					return err
				}
				for _, id := range users {
					fmt.Fprintln(w, id)
				}
				return nil
			}

			return showProfile(ctx, uc, userID, w)
		},
	}
}

func showProfile(ctx context.Context, uc *usecase.UseCases, userID string, w io.Writer) error {
	view, err := uc.Profile.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	facts, err := uc.Profile.ListFacts(ctx, userID)
	if err != nil {
		return err
	}
	printProfile(w, view, facts)
	return nil
}
