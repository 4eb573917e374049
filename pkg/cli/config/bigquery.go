package config

import (
	"context"
	"log/slog"

	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra/bq"
	"github.com/urfave/cli/v3"
)

type BigQuery struct {
	projectID types.GoogleProjectID
	datasetID types.BQDatasetID
	tableID   types.BQTableID
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID to export scan results (optional)",
			Category:    "BigQuery",
			Destination: (*string)(&x.projectID),
			Sources:     cli.EnvVars("CDSCAN_BIGQUERY_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Destination: (*string)(&x.datasetID),
			Sources:     cli.EnvVars("CDSCAN_BIGQUERY_DATASET_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Value:       "scans",
			Destination: (*string)(&x.tableID),
			Sources:     cli.EnvVars("CDSCAN_BIGQUERY_TABLE_ID"),
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != "" && x.datasetID != ""
}

// NewClient returns nil without error when export is not configured.
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if !x.Enabled() {
		return nil, nil
	}

	client, err := bq.New(ctx, x.projectID, x.datasetID, x.tableID)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("ProjectID", x.projectID),
		slog.Any("DatasetID", x.datasetID),
		slog.Any("TableID", x.tableID),
	)
}
