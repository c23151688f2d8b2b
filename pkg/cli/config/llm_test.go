package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/cli/config"
	"github.com/secmon-lab/wayfinder/pkg/service/generator"
	"github.com/urfave/cli/v3"
)

func TestLLM_Configure(t *testing.T) {
	t.Run("local provider", func(t *testing.T) {
		gen, err := config.NewLLMForTest(config.ProviderLocal, "", "").Configure(t.Context())
		gt.NoError(t, err).Required()
		_, ok := gen.(generator.Local)
		gt.Bool(t, ok).True()
	})

	t.Run("gemini requires project", func(t *testing.T) {
		_, err := config.NewLLMForTest(config.ProviderGemini, "", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrMissingOption)
	})

	t.Run("openai requires api key", func(t *testing.T) {
		_, err := config.NewLLMForTest(config.ProviderOpenAI, "", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrMissingOption)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := config.NewLLMForTest("claude-on-a-toaster", "", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrInvalidProvider)
	})

	t.Run("flags", func(t *testing.T) {
		var cfg config.LLM
		gt.Array(t, cfg.Flags()).Length(6)
	})

	t.Run("explicit provider has no default", func(t *testing.T) {
		_, err := config.NewLLMForTest("", "", "").ExplicitProvider().Configure(t.Context())
		gt.Error(t, err).Is(config.ErrMissingOption)

		var cfg config.LLM
		flag, ok := cfg.ExplicitProvider().Flags()[0].(*cli.StringFlag)
		gt.Bool(t, ok).True()
		gt.Bool(t, flag.Required).True()
		gt.Value(t, flag.Value).Equal("")
	})

	t.Run("explicit local is still allowed", func(t *testing.T) {
		gen, err := config.NewLLMForTest(config.ProviderLocal, "", "").ExplicitProvider().Configure(t.Context())
		gt.NoError(t, err).Required()
		_, ok := gen.(generator.Local)
		gt.Bool(t, ok).True()
	})

	t.Run("chat default stays local", func(t *testing.T) {
		var cfg config.LLM
		flag, ok := cfg.Flags()[0].(*cli.StringFlag)
		gt.Bool(t, ok).True()
		gt.Bool(t, flag.Required).False()
		gt.Value(t, flag.Value).Equal(config.ProviderLocal)
	})
}
