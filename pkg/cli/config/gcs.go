package config

import (
	"context"
	"log/slog"

	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra/gcs"
	"github.com/urfave/cli/v3"
)

// ArchiveBucket keeps a copy of every uploaded workspace archive in Cloud Storage.
type ArchiveBucket struct {
	bucket types.GCSBucket
	prefix string
}

func (x *ArchiveBucket) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket to keep uploaded archives (optional)",
			Category:    "Archive",
			Destination: (*string)(&x.bucket),
			Sources:     cli.EnvVars("CDSCAN_ARCHIVE_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "archive-prefix",
			Usage:       "Object name prefix of kept archives",
			Category:    "Archive",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("CDSCAN_ARCHIVE_PREFIX"),
		},
	}
}

func (x *ArchiveBucket) Enabled() bool {
	return x.bucket != ""
}

// NewStore returns nil without error when no bucket is configured.
func (x *ArchiveBucket) NewStore(ctx context.Context) (interfaces.ArchiveStore, error) {
	if !x.Enabled() {
		return nil, nil
	}

	client, err := gcs.New(ctx, x.bucket, x.prefix)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *ArchiveBucket) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Bucket", x.bucket),
		slog.String("Prefix", x.prefix),
	)
}
