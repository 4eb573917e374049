package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionScan = "scan"
	defaultLimit   = 100
)

type scanRepository struct {
	client *firestore.Client
}

// ToDocID validates a job ID for use as a Firestore document ID.
func ToDocID(jobID types.JobID) (string, error) {
	id := jobID.String()
	if id == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "job ID is empty")
	}
	if strings.Contains(id, "/") || id == "." || id == ".." || strings.HasPrefix(id, "__") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "job ID is not a valid document ID",
			goerr.V("job_id", jobID),
		)
	}
	return id, nil
}

func (r *scanRepository) PutScan(ctx context.Context, record *model.ScanRecord) error {
	if record == nil {
		return goerr.Wrap(repository.ErrInvalidInput, "scan record is nil")
	}
	docID, err := ToDocID(record.JobID)
	if err != nil {
		return err
	}

	if _, err := r.client.Collection(collectionScan).Doc(docID).Set(ctx, record); err != nil {
		return goerr.Wrap(err, "failed to put scan record",
			goerr.V("job_id", record.JobID),
		)
	}

	return nil
}

func (r *scanRepository) GetScan(ctx context.Context, jobID types.JobID) (*model.ScanRecord, error) {
	docID, err := ToDocID(jobID)
	if err != nil {
		return nil, err
	}

	snap, err := r.client.Collection(collectionScan).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "scan not found",
				goerr.V("job_id", jobID),
			)
		}
		return nil, goerr.Wrap(err, "failed to get scan record",
			goerr.V("job_id", jobID),
		)
	}

	var record model.ScanRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, goerr.Wrap(err, "failed to decode scan record",
			goerr.V("job_id", jobID),
		)
	}

	return &record, nil
}

// ListScans filters on project_id and orders by started_at, which needs a
// composite index on (project_id, started_at desc) when projectID is set.
func (r *scanRepository) ListScans(ctx context.Context, projectID types.ProjectID, limit int) ([]*model.ScanRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	query := r.client.Collection(collectionScan).Query
	if projectID != "" {
		query = query.Where("project_id", "==", projectID.String())
	}
	query = query.OrderBy("started_at", firestore.Desc).Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.ScanRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate scan records",
				goerr.V("project_id", projectID),
			)
		}

		var record model.ScanRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode scan record",
				goerr.V("doc_id", doc.Ref.ID),
			)
		}
		records = append(records, &record)
	}

	return records, nil
}
