package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
)

func TestFrom(t *testing.T) {
	t.Run("returns default logger for empty context", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
	})

	t.Run("returns logger stored in context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logging.With(context.Background(), logger)

		logging.From(ctx).Info("hello", "user_id", "u1")
		gt.Bool(t, strings.Contains(buf.String(), "user_id=u1")).True()
	})
}

func TestSetDefault(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	logging.SetDefault(nil)
	gt.Value(t, logging.Default()).Equal(orig)

	replaced := logging.Discard()
	logging.SetDefault(replaced)
	gt.Value(t, logging.Default()).Equal(replaced)
}
