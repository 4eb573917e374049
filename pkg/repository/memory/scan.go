package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

type scanRepository struct {
	mu    sync.RWMutex
	scans map[string]*model.ScanRecord
}

func (r *scanRepository) PutScan(ctx context.Context, record *model.ScanRecord) error {
	if record == nil || record.JobID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "scan record has no job ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.scans[record.JobID.String()] = copyRecord(record)
	return nil
}

func (r *scanRepository) GetScan(ctx context.Context, jobID types.JobID) (*model.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.scans[jobID.String()]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "scan not found",
			goerr.V("job_id", jobID),
		)
	}

	return copyRecord(record), nil
}

func (r *scanRepository) ListScans(ctx context.Context, projectID types.ProjectID, limit int) ([]*model.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*model.ScanRecord
	for _, record := range r.scans {
		if projectID != "" && record.ProjectID != projectID {
			continue
		}
		records = append(records, copyRecord(record))
	}

	slices.SortFunc(records, func(a, b *model.ScanRecord) int {
		return b.StartedAt.Compare(a.StartedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

func copyRecord(record *model.ScanRecord) *model.ScanRecord {
	copied := *record
	return &copied
}
