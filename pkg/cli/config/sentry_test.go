package config_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/cybedefend/cdscan/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestSentry(t *testing.T) {
	t.Run("unset DSN disables reporting", func(t *testing.T) {
		t.Setenv("CDSCAN_SENTRY_DSN", "")
		var cfg config.Sentry
		parse(t, cfg.Flags())

		gt.NoError(t, cfg.Configure(context.Background()))
		cfg.Flush()
	})

	t.Run("environment is read from env var", func(t *testing.T) {
		t.Setenv("CDSCAN_SENTRY_ENV", "staging")
		var cfg config.Sentry
		parse(t, cfg.Flags())

		gt.S(t, slog.AnyValue(&cfg).Resolve().String()).Contains("staging")
	})

	t.Run("invalid DSN is an error", func(t *testing.T) {
		var cfg config.Sentry
		parse(t, cfg.Flags(), "--sentry-dsn", "not a dsn")

		gt.Error(t, cfg.Configure(context.Background()))
	})
}
