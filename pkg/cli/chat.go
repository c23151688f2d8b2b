package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/usecase"
	"github.com/secmon-lab/wayfinder/pkg/utils/errutil"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var userID string
	var engine engineConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Aliases:     []string{"u"},
			Usage:       "User ID to talk as",
			Value:       "local",
			Sources:     cli.EnvVars("WAYFINDER_USER"),
			Destination: &userID,
		},
	}
	flags = append(flags, engine.Flags()...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to the assistant from the terminal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := engine.build(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			root := c.Root()
			return chatLoop(ctx, uc, userID, root.Reader, root.Writer)
		},
	}
}

const chatHelp = `Команды:
  /scene <описание>[ | объект, объект]  задать, что видит камера
  /scene                                 убрать изображение
  /profile                               показать профиль
  /facts <запрос>                        найти факты в памяти
  /quit                                  выйти
`

// chatLoop reads one utterance per line until EOF or /quit. Failed turns are
// reported and the loop continues.
func chatLoop(ctx context.Context, uc *usecase.UseCases, userID string, r io.Reader, w io.Writer) error {
	var scene *model.Scene
	scanner := bufio.NewScanner(r)

	headerColor.Fprintf(w, "WayFinder (A-Vision), пользователь %s. /help для списка команд.\n", userID)
	for {
		labelColor.Fprint(w, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue

		case line == "/quit" || line == "/exit":
			return nil

		case line == "/help":
			fmt.Fprint(w, chatHelp)

		case line == "/profile":
			if err := showProfile(ctx, uc, userID, w); err != nil {
				return err
			}

		case strings.HasPrefix(line, "/facts"):
			query := strings.TrimSpace(strings.TrimPrefix(line, "/facts"))
			if err := showFacts(ctx, uc, userID, query, w); err != nil {
				return err
			}

		case strings.HasPrefix(line, "/scene"):
			scene = parseScene(strings.TrimSpace(strings.TrimPrefix(line, "/scene")))
			if scene == nil {
				labelColor.Fprintln(w, "  (изображение убрано)")
			} else {
				labelColor.Fprintln(w, "  (изображение задано)")
			}

		default:
			in := model.TurnInput{UserID: userID, Utterance: line, Scene: scene}
			result, err := uc.Dialog.HandleTurn(ctx, in)
			if err != nil {
				errutil.Handle(ctx, err, "turn failed")
				if errors.Is(err, usecase.ErrGenerationFailed) {
					warnColor.Fprintln(w, "Не удалось получить ответ. Попробуйте ещё раз.")
					continue
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				warnColor.Fprintln(w, "Ошибка обработки запроса.")
				continue
			}
			printTurn(w, in, result)
		}
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}

// parseScene reads "caption | obj1, obj2". An empty argument clears the scene.
func parseScene(arg string) *model.Scene {
	if arg == "" {
		return nil
	}

	caption, objects, _ := strings.Cut(arg, "|")
	scene := &model.Scene{Caption: strings.TrimSpace(caption)}
	for _, obj := range strings.Split(objects, ",") {
		if obj = strings.TrimSpace(obj); obj != "" {
			scene.Objects = append(scene.Objects, obj)
		}
	}
	return scene
}
