package bq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/managedwriter"
	"cloud.google.com/go/bigquery/storage/managedwriter/adapt"
	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/cybedefend/cdscan/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	insertMaxAttempts = 5
	insertRetryWait   = 3 * time.Second
)

type Client struct {
	bqClient *bigquery.Client
	mwClient *managedwriter.Client
	project  string
	dataset  string
	tableID  types.BQTableID
}

var _ interfaces.BigQuery = (*Client)(nil)

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, options ...option.ClientOption) (*Client, error) {
	mwClient, err := managedwriter.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create managed writer client", goerr.V("projectID", projectID))
	}

	bqClient, err := bigquery.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient: bqClient,
		mwClient: mwClient,
		project:  projectID.String(),
		dataset:  datasetID.String(),
		tableID:  tableID,
	}, nil
}

// CreateTable implements interfaces.BigQuery.
func (x *Client) CreateTable(ctx context.Context, md *bigquery.TableMetadata) error {
	if err := x.bqClient.Dataset(x.dataset).Table(x.tableID.String()).Create(ctx, md); err != nil {
		return goerr.Wrap(err, "failed to create table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}
	return nil
}

// GetMetadata implements interfaces.BigQuery. It returns nil without error
// when the table does not exist.
func (x *Client) GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error) {
	md, err := x.bqClient.Dataset(x.dataset).Table(x.tableID.String()).Metadata(ctx)
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == 404 {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get table metadata", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}

	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *Client) UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.bqClient.Dataset(x.dataset).Table(x.tableID.String()).Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(err, "failed to update table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}

	return nil
}

// Insert implements interfaces.BigQuery. A freshly updated schema takes a
// while to reach the write API, so schema mismatches are retried.
func (x *Client) Insert(ctx context.Context, schema bigquery.Schema, data any) error {
	descriptorProto, messageDescriptor, err := buildDescriptor(schema)
	if err != nil {
		return err
	}

	row, err := encodeRow(messageDescriptor, data)
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err := x.appendRows(ctx, descriptorProto, [][]byte{row})
		if err == nil {
			return nil
		}
		if !IsSchemaNotFoundError(err) || attempt >= insertMaxAttempts {
			return err
		}

		logging.From(ctx).Warn("BigQuery schema not yet visible, retrying insert",
			slog.Int("attempt", attempt),
			slog.String("table", x.tableID.String()),
		)
		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "insert interrupted")
		case <-time.After(insertRetryWait):
		}
	}
}

func buildDescriptor(schema bigquery.Schema) (*descriptorpb.DescriptorProto, protoreflect.MessageDescriptor, error) {
	convertedSchema, err := adapt.BQSchemaToStorageTableSchema(schema)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema")
	}

	descriptor, err := adapt.StorageSchemaToProto2Descriptor(convertedSchema, "root")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema to descriptor")
	}
	messageDescriptor, ok := descriptor.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, nil, goerr.New("adapted descriptor is not a message descriptor")
	}
	descriptorProto, err := adapt.NormalizeDescriptor(messageDescriptor)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to normalize descriptor")
	}

	return descriptorProto, messageDescriptor, nil
}

func encodeRow(md protoreflect.MessageDescriptor, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal row")
	}
	sanitizedRaw, err := sanitizeProtoJSON(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sanitize row", goerr.V("raw", string(raw)))
	}

	message := dynamicpb.NewMessage(md)
	if err := protojson.Unmarshal(sanitizedRaw, message); err != nil {
		return nil, goerr.Wrap(err, "failed to convert row to proto message", goerr.V("raw", string(raw)))
	}
	b, err := proto.Marshal(message)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal proto message")
	}
	return b, nil
}

func (x *Client) appendRows(ctx context.Context, descriptorProto *descriptorpb.DescriptorProto, rows [][]byte) error {
	ms, err := x.mwClient.NewManagedStream(ctx,
		managedwriter.WithDestinationTable(
			managedwriter.TableParentFromParts(x.project, x.dataset, x.tableID.String()),
		),
		managedwriter.WithSchemaDescriptor(descriptorProto),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create managed stream")
	}
	defer safe.Close(ms)

	arResult, err := ms.AppendRows(ctx, rows)
	if err != nil {
		return goerr.Wrap(err, "failed to append rows")
	}
	if _, err := arResult.FullResponse(ctx); err != nil {
		return goerr.Wrap(err, "failed to get append result")
	}

	return nil
}

// IsSchemaNotFoundError reports whether err is the write API rejecting
// fields that the table schema does not have yet.
func IsSchemaNotFoundError(err error) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		st, ok := status.FromError(e)
		if !ok || st.Code() != codes.InvalidArgument {
			continue
		}
		if strings.Contains(st.Message(), "Input schema has more fields than BigQuery schema") {
			return true
		}
	}
	return false
}

func sanitizeProtoJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}

	return json.Marshal(sanitizeProtoJSONValue(data))
}

func sanitizeProtoJSONValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(val))
		for key, value := range val {
			res[protoFieldJSONName(key)] = sanitizeProtoJSONValue(value)
		}
		return res
	case []any:
		for i := range val {
			val[i] = sanitizeProtoJSONValue(val[i])
		}
		return val
	default:
		return v
	}
}

// protoFieldJSONName maps keys that are not valid proto field names to a
// stable column name.
func protoFieldJSONName(name string) string {
	if protoreflect.Name(name).IsValid() {
		return name
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(name))
	encoded = strings.NewReplacer("+", "_", "/", "_", "=", "").Replace(encoded)
	return "col_" + encoded
}
