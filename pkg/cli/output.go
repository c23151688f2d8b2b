package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"github.com/secmon-lab/wayfinder/pkg/usecase"
)

var (
	labelColor   = color.New(color.FgHiBlack)
	replyColor   = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgYellow, color.Bold)
	moodColorMap = map[types.Mood]*color.Color{
		types.MoodHappy:    color.New(color.FgGreen),
		types.MoodTired:    color.New(color.FgBlue),
		types.MoodStressed: color.New(color.FgMagenta),
		types.MoodNeutral:  color.New(color.FgWhite),
	}
)

func moodColor(mood types.Mood) *color.Color {
	if c, ok := moodColorMap[mood]; ok {
		return c
	}
	return moodColorMap[types.MoodNeutral]
}

func printTurn(w io.Writer, in model.TurnInput, result *model.TurnResult) {
	if in.Scene.IsDanger() {
		warnColor.Fprintln(w, "! Осторожно: впереди препятствие")
	}
	moodColor(result.Affect.Mood).Fprintf(w, "[%s/%s] ", result.Affect.Mood, result.Affect.Energy)
	replyColor.Fprint(w, "A-Vision: ")
	fmt.Fprintln(w, result.Reply)
	if len(result.StoredFacts) > 0 {
		labelColor.Fprintf(w, "  (запомнено фактов: %d)\n", len(result.StoredFacts))
	}
}

func printProfile(w io.Writer, view *usecase.ProfileView, facts []*model.FactEntry) {
	p := view.Profile
	headerColor.Fprintf(w, "Пользователь %s\n", p.UserID)
	if !view.Known {
		labelColor.Fprintln(w, "  (ещё не общался с ассистентом)")
	}

	name := "неизвестно"
	if p.HasName() {
		name = p.Name
	}
	fmt.Fprintf(w, "  Имя: %s\n", name)
	moodColor(p.Affect.Mood).Fprintf(w, "  %s\n", view.Description)
	if len(p.Interests) > 0 {
		fmt.Fprintf(w, "  Интересы: %s\n", strings.Join(p.Interests, ", "))
	}

	if len(facts) == 0 {
		return
	}
	headerColor.Fprintln(w, "Факты")
	for i, f := range facts {
		labelColor.Fprintf(w, "  %d. [%s] ", i+1, f.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintln(w, f.Text)
	}
}
