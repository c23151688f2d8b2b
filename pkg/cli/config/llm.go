package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/service/generator"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	ProviderLocal  = "local"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLM holds configuration for the reply generator
type LLM struct {
	provider string
	explicit bool

	geminiProject  string
	geminiLocation string
	geminiModel    string

	openaiAPIKey string
	openaiModel  string
}

// ExplicitProvider makes --llm-provider required. Commands that answer real
// users must not fall back to the local generator silently.
func (l *LLM) ExplicitProvider() *LLM {
	l.explicit = true
	return l
}

func (l *LLM) Flags() []cli.Flag {
	defaultProvider := ProviderLocal
	if l.explicit {
		defaultProvider = ""
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Category:    "LLM",
			Usage:       "Reply generator (local, gemini, openai)",
			Value:       defaultProvider,
			Required:    l.explicit,
			Sources:     cli.EnvVars("WAYFINDER_LLM_PROVIDER"),
			Destination: &l.provider,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Category:    "LLM",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("WAYFINDER_GEMINI_PROJECT"),
			Destination: &l.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Category:    "LLM",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("WAYFINDER_GEMINI_LOCATION"),
			Destination: &l.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Category:    "LLM",
			Usage:       "Gemini model name (provider default when empty)",
			Sources:     cli.EnvVars("WAYFINDER_GEMINI_MODEL"),
			Destination: &l.geminiModel,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Category:    "LLM",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("WAYFINDER_OPENAI_API_KEY"),
			Destination: &l.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Category:    "LLM",
			Usage:       "OpenAI model name (provider default when empty)",
			Sources:     cli.EnvVars("WAYFINDER_OPENAI_MODEL"),
			Destination: &l.openaiModel,
		},
	}
}

func (l *LLM) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("provider", l.provider)}
	switch l.provider {
	case ProviderGemini:
		attrs = append(attrs,
			slog.String("project_id", l.geminiProject),
			slog.String("location", l.geminiLocation),
			slog.String("model", l.geminiModel),
		)
	case ProviderOpenAI:
		attrs = append(attrs, slog.String("model", l.openaiModel))
	}
	return attrs
}

// Configure returns the generator for the selected provider. The local
// provider needs no credentials and answers with canned replies.
func (l *LLM) Configure(ctx context.Context) (interfaces.Generator, error) {
	var client gollem.LLMClient
	switch l.provider {
	case "":
		if l.explicit {
			return nil, goerr.Wrap(ErrMissingOption, "llm-provider is required",
				goerr.V(OptionKey, "llm-provider"))
		}
		return generator.NewLocal(), nil

	case ProviderLocal:
		if l.explicit {
			logging.Default().Warn("local generator selected, replies are canned and not produced by a model")
		}
		return generator.NewLocal(), nil

	case ProviderGemini:
		if l.geminiProject == "" {
			return nil, goerr.Wrap(ErrMissingOption, "gemini-project is required for gemini provider",
				goerr.V(OptionKey, "gemini-project"))
		}
		var opts []gemini.Option
		if l.geminiModel != "" {
			opts = append(opts, gemini.WithModel(l.geminiModel))
		}
		c, err := gemini.New(ctx, l.geminiProject, l.geminiLocation, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		client = c

	case ProviderOpenAI:
		if l.openaiAPIKey == "" {
			return nil, goerr.Wrap(ErrMissingOption, "openai-api-key is required for openai provider",
				goerr.V(OptionKey, "openai-api-key"))
		}
		var opts []openai.Option
		if l.openaiModel != "" {
			opts = append(opts, openai.WithModel(l.openaiModel))
		}
		c, err := openai.New(ctx, l.openaiAPIKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		client = c

	default:
		return nil, goerr.Wrap(ErrInvalidProvider, "unknown LLM provider", goerr.V(ProviderKey, l.provider))
	}

	gen, err := generator.NewLLM(client)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create generator", goerr.V(ProviderKey, l.provider))
	}
	return gen, nil
}
