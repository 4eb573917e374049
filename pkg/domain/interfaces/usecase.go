package interfaces

import (
	"context"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
)

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

// UseCase is the scan workflow as seen by the HTTP server.
type UseCase interface {
	StartScan(ctx context.Context, input *model.ScanInput) (types.JobID, <-chan struct{}, error)
	CancelScan() bool
	ActiveJob() types.JobID

	Snapshot() model.Snapshot
	ResetState()

	ListScans(ctx context.Context, projectID types.ProjectID, limit int) ([]*model.ScanRecord, error)
	GetVulnerability(ctx context.Context, projectID types.ProjectID, vulnType types.VulnType, vulnerabilityID string) (*model.Vulnerability, error)
}
