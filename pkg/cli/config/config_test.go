package config_test

import (
	"context"
	"testing"

	"github.com/cybedefend/cdscan/pkg/cli/config"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

// parse runs a command carrying flags with the given arguments.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestCybeDefendFlags(t *testing.T) {
	t.Run("region selects base URL", func(t *testing.T) {
		var cfg config.CybeDefend
		parse(t, cfg.Flags(), "--region", "eu", "--api-key", "k", "--project-id", "p1")

		gt.V(t, cfg.BaseURL()).Equal("https://api-eu.cybedefend.com")
		gt.V(t, cfg.ProjectID().String()).Equal("p1")

		client := gt.R1(cfg.NewClient()).NoError(t)
		gt.V(t, client.BaseURL()).Equal("https://api-eu.cybedefend.com")
	})

	t.Run("explicit URL wins", func(t *testing.T) {
		var cfg config.CybeDefend
		parse(t, cfg.Flags(), "--api-url", "https://example.test", "--debug-api")
		gt.V(t, cfg.BaseURL()).Equal("https://example.test")
	})

	t.Run("debug uses local API", func(t *testing.T) {
		t.Setenv("CYBEDEFEND_DEBUG", "true")
		var cfg config.CybeDefend
		parse(t, cfg.Flags())
		gt.V(t, cfg.BaseURL()).Equal("http://localhost:3000")
	})

	t.Run("API key is required", func(t *testing.T) {
		t.Setenv("CDSCAN_API_KEY", "")
		t.Setenv("CYBEDEFEND_API_KEY", "")
		var cfg config.CybeDefend
		parse(t, cfg.Flags())
		_, err := cfg.NewClient()
		gt.Error(t, err)
	})
}

func TestScanFlags(t *testing.T) {
	var cfg config.Scan
	parse(t, cfg.Flags(), "--exclude", "vendor", "--exclude", "tmp", "--max-attempts", "3")

	gt.A(t, cfg.Options()).Length(4)
	gt.NotNil(t, cfg.BranchDetector())
}

func TestOptionalCloudConfigs(t *testing.T) {
	ctx := context.Background()

	t.Run("BigQuery disabled without dataset", func(t *testing.T) {
		var cfg config.BigQuery
		parse(t, cfg.Flags(), "--bigquery-project-id", "gcp")
		gt.False(t, cfg.Enabled())
		client := gt.R1(cfg.NewClient(ctx)).NoError(t)
		gt.Nil(t, client)
	})

	t.Run("archive bucket disabled by default", func(t *testing.T) {
		var cfg config.ArchiveBucket
		parse(t, cfg.Flags())
		gt.False(t, cfg.Enabled())
		store := gt.R1(cfg.NewStore(ctx)).NoError(t)
		gt.Nil(t, store)
	})

	t.Run("Firestore disabled by default", func(t *testing.T) {
		var cfg config.Firestore
		parse(t, cfg.Flags())
		gt.False(t, cfg.Enabled())
	})
}
