package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra/cybedefend"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type CybeDefend struct {
	apiKey     types.APIKey `masq:"secret"`
	region     string
	apiURL     string
	debug      bool
	projectID  string
	pageSize   int64
	severities []string
	timeout    time.Duration
}

func (x *CybeDefend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "CybeDefend API key",
			Category:    "CybeDefend",
			Destination: (*string)(&x.apiKey),
			Sources:     cli.EnvVars("CDSCAN_API_KEY", "CYBEDEFEND_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "region",
			Usage:       "API region [us|eu]",
			Category:    "CybeDefend",
			Value:       string(types.RegionUS),
			Destination: &x.region,
			Sources:     cli.EnvVars("CDSCAN_REGION"),
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "API base URL, overrides region",
			Category:    "CybeDefend",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("CDSCAN_API_URL"),
		},
		&cli.BoolFlag{
			Name:        "debug-api",
			Usage:       "Use the local development API",
			Category:    "CybeDefend",
			Destination: &x.debug,
			Sources:     cli.EnvVars("CDSCAN_DEBUG", "CYBEDEFEND_DEBUG"),
		},
		&cli.StringFlag{
			Name:        "project-id",
			Aliases:     []string{"p"},
			Usage:       "CybeDefend project ID",
			Category:    "CybeDefend",
			Destination: &x.projectID,
			Sources:     cli.EnvVars("CDSCAN_PROJECT_ID"),
		},
		&cli.Int64Flag{
			Name:        "page-size",
			Usage:       "Results page size",
			Category:    "CybeDefend",
			Value:       cybedefend.DefaultPageSize,
			Destination: &x.pageSize,
			Sources:     cli.EnvVars("CDSCAN_PAGE_SIZE"),
		},
		&cli.StringSliceFlag{
			Name:        "severity",
			Usage:       "Only fetch findings of these severities (repeatable)",
			Category:    "CybeDefend",
			Destination: &x.severities,
			Sources:     cli.EnvVars("CDSCAN_SEVERITY"),
		},
		&cli.DurationFlag{
			Name:        "api-timeout",
			Usage:       "Timeout of a single API request",
			Category:    "CybeDefend",
			Value:       5 * time.Minute,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("CDSCAN_API_TIMEOUT"),
		},
	}
}

// BaseURL returns the API endpoint selected by the flags.
func (x *CybeDefend) BaseURL() string {
	return cybedefend.ResolveBaseURL(types.ParseRegion(x.region), x.apiURL, x.debug)
}

func (x *CybeDefend) ProjectID() types.ProjectID {
	return types.ProjectID(x.projectID)
}

func (x *CybeDefend) NewClient() (*cybedefend.Client, error) {
	if x.apiKey == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "API key is required (--api-key or CDSCAN_API_KEY)")
	}

	return cybedefend.New(x.apiKey, x.BaseURL(),
		cybedefend.WithHTTPClient(&http.Client{Timeout: x.timeout}),
	)
}

// Options returns the result query settings of the scan workflow.
func (x *CybeDefend) Options() []usecase.Option {
	options := []usecase.Option{usecase.WithSeverities(x.severities)}
	if x.pageSize > 0 {
		options = append(options, usecase.WithPageSize(int(x.pageSize)))
	}
	return options
}

func (x *CybeDefend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("APIKey.len", len(x.apiKey)),
		slog.String("BaseURL", x.BaseURL()),
		slog.String("ProjectID", x.projectID),
		slog.Int64("PageSize", x.pageSize),
		slog.Any("Severities", x.severities),
		slog.Duration("Timeout", x.timeout),
	)
}
