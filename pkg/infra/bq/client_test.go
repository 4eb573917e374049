package bq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra/bq"
	"github.com/cybedefend/cdscan/pkg/utils/testutil"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("cdscan_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)

	export := model.NewScanExport(&model.ScanRecord{
		JobID:      types.NewJobID(),
		ScanID:     "scan-1",
		ProjectID:  "project-1",
		State:      types.ScanStateCompleted,
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
	}, &model.Results{
		SAST: []model.Vulnerability{{ID: "s1", Type: types.VulnTypeSAST, Severity: "HIGH"}},
	})
	schema := gt.R1(bqs.Infer(export)).NoError(t)

	t.Run("create table", func(t *testing.T) {
		md := gt.R1(client.GetMetadata(ctx)).NoError(t)
		gt.Nil(t, md)

		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))
	})

	t.Run("insert row", func(t *testing.T) {
		gt.NoError(t, client.Insert(ctx, schema, export.Raw()))
	})
}

func TestProtoFieldJSONName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps valid names",
			input: "job_id",
			want:  "job_id",
		},
		{
			name:  "renames invalid names",
			input: "ruby-advisory-db",
			want:  "col_cnVieS1hZHZpc29yeS1kYg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.V(t, bq.ProtoFieldJSONName(tc.input)).Equal(tc.want)
		})
	}
}

func TestSanitizeProtoJSON(t *testing.T) {
	raw := []byte(`{"findings":[{"id":"x","extra-field":1}],"state":"COMPLETED"}`)
	sanitized := gt.R1(bq.SanitizeProtoJSON(raw)).NoError(t)

	dec := json.NewDecoder(bytes.NewReader(sanitized))
	dec.UseNumber()
	payload := map[string]any{}
	gt.NoError(t, dec.Decode(&payload))

	findings, ok := payload["findings"].([]any)
	gt.True(t, ok)
	finding, ok := findings[0].(map[string]any)
	gt.True(t, ok)

	_, renamed := finding[bq.ProtoFieldJSONName("extra-field")]
	gt.True(t, renamed)
	_, original := finding["extra-field"]
	gt.False(t, original)
	gt.V(t, payload["state"]).Equal("COMPLETED")
}

func TestIsSchemaNotFoundError(t *testing.T) {
	mismatch := status.Error(codes.InvalidArgument, "Input schema has more fields than BigQuery schema, extra fields: 'findings'")

	gt.True(t, bq.IsSchemaNotFoundError(mismatch))
	gt.True(t, bq.IsSchemaNotFoundError(goerr.Wrap(goerr.Wrap(mismatch, "level 1"), "level 2")))
	gt.False(t, bq.IsSchemaNotFoundError(status.Error(codes.InvalidArgument, "Invalid request parameters")))
	gt.False(t, bq.IsSchemaNotFoundError(status.Error(codes.PermissionDenied, "Input schema has more fields than BigQuery schema")))
	gt.False(t, bq.IsSchemaNotFoundError(errors.New("some other error")))
	gt.False(t, bq.IsSchemaNotFoundError(nil))
}
