// Package prompt assembles the system prompt handed to the generator.
package prompt

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

//go:embed templates/system.md
var systemPromptTmpl string

var systemPrompt = template.Must(template.New("system").Parse(systemPromptTmpl))

var moodGuidance = map[types.Mood]string{
	types.MoodTired:    "У пользователя мало сил. Предлагай простые решения, будь мягче.",
	types.MoodHappy:    "Пользователь в хорошем настроении. Поддерживай позитив!",
	types.MoodStressed: "Пользователь напряжен. Говори спокойно и по делу, помогай разбить задачу на простые шаги.",
	types.MoodNeutral:  "",
}

// Guidance returns the behavioral hint for mood. Neutral and unknown moods
// yield an empty string.
func Guidance(mood types.Mood) string {
	return moodGuidance[mood]
}

// Input is everything the prompt depends on. Build reads nothing else, so
// equal inputs always give byte-identical prompts.
type Input struct {
	Affect    model.AffectState
	Profile   *model.Profile
	Situation model.Situation
	Facts     []*model.FactEntry
	Visual    string // empty when no visual context is available
}

type templateData struct {
	Situation string
	Clock     string
	Name      string
	Guidance  string
	Facts     string
	Visual    string
}

func Build(in Input) (string, error) {
	data := templateData{
		Situation: in.Situation.Label.Text(),
		Clock:     in.Situation.Clock,
		Guidance:  Guidance(in.Affect.Mood),
		Facts:     model.RenderFacts(in.Facts),
		Visual:    strings.TrimSpace(in.Visual),
	}
	if in.Profile != nil {
		data.Name = in.Profile.Name
	}

	var buf bytes.Buffer
	if err := systemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute system prompt template")
	}
	return buf.String(), nil
}
