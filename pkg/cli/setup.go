package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/cli/config"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/usecase"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// engineConfig gathers the flags every command that talks to the dialog
// engine needs
type engineConfig struct {
	repo   config.Repository
	llm    config.LLM
	dialog config.Dialog
}

func (e *engineConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, e.repo.Flags()...)
	flags = append(flags, e.llm.Flags()...)
	flags = append(flags, e.dialog.Flags()...)
	return flags
}

// build wires the repository, generator and dialog settings into use cases.
// The returned function closes the repository.
func (e *engineConfig) build(ctx context.Context) (*usecase.UseCases, func(), error) {
	repo, err := e.repo.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}
	closeRepo := func() { closeRepository(repo) }

	gen, err := e.llm.Configure(ctx)
	if err != nil {
		closeRepo()
		return nil, nil, goerr.Wrap(err, "failed to configure generator")
	}

	opts, err := e.dialog.Configure()
	if err != nil {
		closeRepo()
		return nil, nil, goerr.Wrap(err, "failed to configure dialog")
	}
	opts = append(opts, usecase.WithGenerator(gen))

	logging.Default().Info("Engine configured",
		"repository", e.repo.LogAttrs(),
		"llm", e.llm.LogAttrs(),
		"dialog", e.dialog.LogAttrs(),
	)

	return usecase.New(repo, opts...), closeRepo, nil
}

func closeRepository(repo interfaces.Repository) {
	if err := repo.Close(); err != nil {
		logging.Default().Error("failed to close repository", "error", err.Error())
	}
}
