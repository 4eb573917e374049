package cli

import (
	"context"

	"github.com/cybedefend/cdscan/pkg/cli/config"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func requireProjectID(projectID types.ProjectID) error {
	if projectID == "" {
		return goerr.Wrap(types.ErrInvalidOption, "project ID is required (--project-id or CDSCAN_PROJECT_ID)")
	}
	return nil
}

// scanConfig is the flag set shared by commands that run scans.
type scanConfig struct {
	cybeDefend config.CybeDefend
	scan       config.Scan
	bigQuery   config.BigQuery
	firestore  config.Firestore
	archive    config.ArchiveBucket
	sentry     config.Sentry
}

func (x *scanConfig) newUseCase(ctx context.Context, options ...usecase.Option) (*usecase.UseCase, error) {
	cd, err := x.cybeDefend.NewClient()
	if err != nil {
		return nil, err
	}

	infraOptions := []infra.Option{
		infra.WithCybeDefend(cd),
		infra.WithBranchDetector(x.scan.BranchDetector()),
	}

	if bqClient, err := x.bigQuery.NewClient(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client")
	} else if bqClient != nil {
		infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
	}

	if x.firestore.Enabled() {
		repo, err := x.firestore.NewRepository(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Firestore repository")
		}
		infraOptions = append(infraOptions, infra.WithScanRepository(repo))
	}

	if store, err := x.archive.NewStore(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to create archive store")
	} else if store != nil {
		infraOptions = append(infraOptions, infra.WithArchiveStore(store))
	}

	ucOptions := append(x.cybeDefend.Options(), x.scan.Options()...)
	ucOptions = append(ucOptions, options...)

	return usecase.New(infra.New(infraOptions...), ucOptions...), nil
}

func (x *scanConfig) flags() []cli.Flag {
	return slice.Flatten(
		x.cybeDefend.Flags(),
		x.scan.Flags(),
		x.bigQuery.Flags(),
		x.firestore.Flags(),
		x.archive.Flags(),
		x.sentry.Flags(),
	)
}
