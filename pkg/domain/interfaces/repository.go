package interfaces

import (
	"context"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
)

// ScanRepository keeps the history of scan runs.
type ScanRepository interface {
	PutScan(ctx context.Context, record *model.ScanRecord) error
	GetScan(ctx context.Context, jobID types.JobID) (*model.ScanRecord, error)
	// ListScans returns records of the project, newest first. An empty
	// projectID lists every project.
	ListScans(ctx context.Context, projectID types.ProjectID, limit int) ([]*model.ScanRecord, error)
}
