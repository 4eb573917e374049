package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . CybeDefend BigQuery ArchiveStore

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
)

// CybeDefend is the remote scanning API.
type CybeDefend interface {
	StartScan(ctx context.Context, projectID types.ProjectID, branch types.BranchName) (*model.StartScanResponse, error)
	UploadArchive(ctx context.Context, uploadURL string, archivePath string) error
	GetScanStatus(ctx context.Context, projectID types.ProjectID, scanID types.ScanID) (*model.ScanStatusResponse, error)

	GetSASTResults(ctx context.Context, query *model.ResultsQuery) (*model.SASTPage, error)
	GetIaCResults(ctx context.Context, query *model.ResultsQuery) (*model.IaCPage, error)
	GetSCAResults(ctx context.Context, query *model.ResultsQuery) (*model.SCAPage, error)

	GetVulnerabilityDetails(ctx context.Context, projectID types.ProjectID, vulnType types.VulnType, vulnerabilityID string) (*model.VulnerabilityDetails, error)
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// ArchiveStore keeps a copy of uploaded workspace archives.
type ArchiveStore interface {
	Put(ctx context.Context, name string, archivePath string) error
}

// BranchDetector reports the checked-out branch of a workspace.
type BranchDetector interface {
	CurrentBranch(ctx context.Context, root string) (types.BranchName, bool)
	RepositoryName(root string) string
}
