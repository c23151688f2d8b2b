package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/service/affect"
	"github.com/secmon-lab/wayfinder/pkg/service/extract"
	"github.com/secmon-lab/wayfinder/pkg/service/factstore"
	"github.com/secmon-lab/wayfinder/pkg/service/situation"
	"github.com/secmon-lab/wayfinder/pkg/service/speech"
	"github.com/secmon-lab/wayfinder/pkg/usecase"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Dialog holds flags that tune conversation turns
type Dialog struct {
	timezone   string
	factTopK   int
	localePath string
	ttsURL     string
	ttsTimeout time.Duration
}

func (d *Dialog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "timezone",
			Category:    "Dialog",
			Usage:       "IANA time zone used to resolve the time of day",
			Value:       "Local",
			Sources:     cli.EnvVars("WAYFINDER_TIMEZONE"),
			Destination: &d.timezone,
		},
		&cli.IntFlag{
			Name:        "fact-top-k",
			Category:    "Dialog",
			Usage:       "Number of remembered facts added to each prompt",
			Value:       factstore.DefaultTopK,
			Sources:     cli.EnvVars("WAYFINDER_FACT_TOP_K"),
			Destination: &d.factTopK,
		},
		&cli.StringFlag{
			Name:        "locale-file",
			Category:    "Dialog",
			Usage:       "TOML file overriding affect rules and extraction phrases",
			Sources:     cli.EnvVars("WAYFINDER_LOCALE_FILE"),
			Destination: &d.localePath,
		},
		&cli.StringFlag{
			Name:        "tts-url",
			Category:    "Dialog",
			Usage:       "Speech synthesis endpoint; replies are text only when empty",
			Sources:     cli.EnvVars("WAYFINDER_TTS_URL"),
			Destination: &d.ttsURL,
		},
		&cli.DurationFlag{
			Name:        "tts-timeout",
			Category:    "Dialog",
			Usage:       "Speech synthesis request timeout",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("WAYFINDER_TTS_TIMEOUT"),
			Destination: &d.ttsTimeout,
		},
	}
}

func (d *Dialog) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("timezone", d.timezone),
		slog.Int("fact_top_k", d.factTopK),
		slog.String("locale_file", d.localePath),
		slog.Bool("tts", d.ttsURL != ""),
	}
}

// Configure returns use case options for the dialog settings
func (d *Dialog) Configure() ([]usecase.Option, error) {
	loc, err := time.LoadLocation(d.timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", d.timezone))
	}
	if d.factTopK <= 0 {
		return nil, goerr.New("fact-top-k must be positive", goerr.V("fact_top_k", d.factTopK))
	}

	var locale *Locale
	if d.localePath != "" {
		locale, err = LoadLocale(d.localePath)
		if err != nil {
			return nil, err
		}
		logging.Default().Info("Locale loaded", "path", d.localePath, "rules", len(locale.Rules()))
	}

	opts := []usecase.Option{
		usecase.WithResolver(situation.NewResolver(situation.WithLocation(loc))),
		usecase.WithFactTopK(d.factTopK),
		usecase.WithClassifier(affect.NewClassifier(locale.Rules()...)),
		usecase.WithExtractor(extract.New(locale.Patterns())),
	}

	if d.ttsURL != "" {
		synth := speech.NewHTTPSynthesizer(d.ttsURL, d.ttsTimeout)
		opts = append(opts, usecase.WithSpeech(speech.New(speech.WithSynthesizer(synth))))
	}

	return opts, nil
}
