package usecase

import (
	"context"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const DefaultHistoryLimit = 20

// ListScans returns recorded runs, newest first.
func (x *UseCase) ListScans(ctx context.Context, projectID types.ProjectID, limit int) ([]*model.ScanRecord, error) {
	repo := x.clients.ScanRepository()
	if repo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := repo.ListScans(ctx, projectID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list scans", goerr.V("project_id", projectID))
	}
	return records, nil
}

func (x *UseCase) GetScan(ctx context.Context, jobID types.JobID) (*model.ScanRecord, error) {
	repo := x.clients.ScanRepository()
	if repo == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "scan history is not configured")
	}

	record, err := repo.GetScan(ctx, jobID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get scan", goerr.V("job_id", jobID))
	}
	return record, nil
}

// GetRemoteScanStatus asks the backend for the state of one scan.
func (x *UseCase) GetRemoteScanStatus(ctx context.Context, projectID types.ProjectID, scanID types.ScanID) (*model.ScanStatusResponse, error) {
	cd := x.clients.CybeDefend()
	if cd == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "CybeDefend client is not configured")
	}
	if projectID == "" || scanID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "project ID and scan ID are required")
	}

	status, err := cd.GetScanStatus(ctx, projectID, scanID)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// GetVulnerability fetches the full record of one finding.
func (x *UseCase) GetVulnerability(ctx context.Context, projectID types.ProjectID, vulnType types.VulnType, vulnerabilityID string) (*model.Vulnerability, error) {
	cd := x.clients.CybeDefend()
	if cd == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "CybeDefend client is not configured")
	}
	if projectID == "" || vulnerabilityID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "project ID and vulnerability ID are required")
	}

	details, err := cd.GetVulnerabilityDetails(ctx, projectID, vulnType, vulnerabilityID)
	if err != nil {
		return nil, err
	}
	return details.ToUnified()
}
