package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
)

// exportResults writes one row per finished run to BigQuery.
func (x *UseCase) exportResults(ctx context.Context, record *model.ScanRecord, results *model.Results) error {
	bq := x.clients.BigQuery()
	if bq == nil {
		return nil
	}

	export := model.NewScanExport(record, results)
	schema, err := createOrUpdateBigQueryTable(ctx, bq, export)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, export.Raw()); err != nil {
		return goerr.Wrap(err, "failed to insert scan export to BigQuery", goerr.V("job_id", record.JobID))
	}

	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, export *model.ScanExport) (bigquery.Schema, error) {
	schema, err := bqs.Infer(export)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer scan export schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}

		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
