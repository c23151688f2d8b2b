package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/cli/config"
)

func TestDialog_Configure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := config.NewDialogForTest("UTC", 3, "", "").Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(4)
	})

	t.Run("speech synthesis adds an option", func(t *testing.T) {
		opts, err := config.NewDialogForTest("UTC", 5, "", "http://localhost:5002/tts").Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(5)
	})

	t.Run("invalid timezone", func(t *testing.T) {
		_, err := config.NewDialogForTest("Mars/Olympus", 3, "", "").Configure()
		gt.Error(t, err)
	})

	t.Run("non-positive top k", func(t *testing.T) {
		_, err := config.NewDialogForTest("UTC", 0, "", "").Configure()
		gt.Error(t, err)
	})

	t.Run("invalid locale file", func(t *testing.T) {
		path := writeLocale(t, `
[[affect_rule]]
category = "x"
triggers = ["y"]
mood = "sleepy"
`)
		_, err := config.NewDialogForTest("UTC", 3, path, "").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLocale)
	})
}
