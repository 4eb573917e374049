package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cybedefend/cdscan/pkg/domain/mock"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra"
	"github.com/cybedefend/cdscan/pkg/repository"
	"github.com/cybedefend/cdscan/pkg/repository/memory"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestListScans(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	now := time.Now().UTC()
	for i, id := range []types.JobID{"job-1", "job-2", "job-3"} {
		gt.NoError(t, repo.PutScan(ctx, &model.ScanRecord{
			JobID:     id,
			ProjectID: "p1",
			State:     types.ScanStateCompleted,
			StartedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	uc := usecase.New(infra.New(infra.WithScanRepository(repo)))

	t.Run("newest first", func(t *testing.T) {
		records := gt.R1(uc.ListScans(ctx, "p1", 2)).NoError(t)
		gt.A(t, records).Length(2)
		gt.V(t, records[0].JobID).Equal(types.JobID("job-3"))
		gt.V(t, records[1].JobID).Equal(types.JobID("job-2"))
	})

	t.Run("default limit", func(t *testing.T) {
		records := gt.R1(uc.ListScans(ctx, "", 0)).NoError(t)
		gt.A(t, records).Length(3)
	})

	t.Run("get one", func(t *testing.T) {
		record := gt.R1(uc.GetScan(ctx, "job-1")).NoError(t)
		gt.V(t, record.ProjectID).Equal(types.ProjectID("p1"))

		_, err := uc.GetScan(ctx, "missing")
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestGetRemoteScanStatus(t *testing.T) {
	backend := &mock.CybeDefendMock{
		GetScanStatusFunc: func(ctx context.Context, projectID types.ProjectID, scanID types.ScanID) (*model.ScanStatusResponse, error) {
			return &model.ScanStatusResponse{ID: scanID, State: "RUNNING", Progress: 40}, nil
		},
	}
	uc := usecase.New(infra.New(infra.WithCybeDefend(backend)))

	status := gt.R1(uc.GetRemoteScanStatus(context.Background(), "p1", "s1")).NoError(t)
	gt.V(t, status.State).Equal("RUNNING")
	gt.V(t, status.Progress).Equal(40)

	_, err := uc.GetRemoteScanStatus(context.Background(), "p1", "")
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
	gt.A(t, backend.GetScanStatusCalls()).Length(1)
}

func TestGetVulnerability(t *testing.T) {
	t.Run("unified from details", func(t *testing.T) {
		backend := &mock.CybeDefendMock{
			GetVulnerabilityDetailsFunc: func(ctx context.Context, projectID types.ProjectID, vulnType types.VulnType, id string) (*model.VulnerabilityDetails, error) {
				return &model.VulnerabilityDetails{
					ProjectID:       projectID.String(),
					VulnerabilityID: id,
					SCA: &model.SCAItem{
						Base:    &model.VulnerabilityBase{ID: id, CurrentSeverity: "CRITICAL"},
						Library: &model.ScaLibrary{PackageName: "lodash", PackageVersion: "4.17.0"},
					},
				}, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithCybeDefend(backend)))

		v := gt.R1(uc.GetVulnerability(context.Background(), "p1", types.VulnTypeSCA, "c1")).NoError(t)
		gt.V(t, v.ID).Equal("c1")
		gt.V(t, v.Type).Equal(types.VulnTypeSCA)
		gt.V(t, v.Severity).Equal("CRITICAL")

		calls := backend.GetVulnerabilityDetailsCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].VulnType).Equal(types.VulnTypeSCA)
	})

	t.Run("missing identifiers", func(t *testing.T) {
		backend := &mock.CybeDefendMock{}
		uc := usecase.New(infra.New(infra.WithCybeDefend(backend)))

		_, err := uc.GetVulnerability(context.Background(), "", types.VulnTypeSAST, "v1")
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
		_, err = uc.GetVulnerability(context.Background(), "p1", types.VulnTypeSAST, "")
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
		gt.A(t, backend.GetVulnerabilityDetailsCalls()).Length(0)
	})

	t.Run("no client configured", func(t *testing.T) {
		uc := usecase.New(infra.New())
		_, err := uc.GetVulnerability(context.Background(), "p1", types.VulnTypeSAST, "v1")
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("backend error passes through", func(t *testing.T) {
		backend := &mock.CybeDefendMock{
			GetVulnerabilityDetailsFunc: func(ctx context.Context, projectID types.ProjectID, vulnType types.VulnType, id string) (*model.VulnerabilityDetails, error) {
				return nil, types.ErrAPIRequest
			},
		}
		uc := usecase.New(infra.New(infra.WithCybeDefend(backend)))

		_, err := uc.GetVulnerability(context.Background(), "p1", types.VulnTypeIaC, "v1")
		gt.True(t, errors.Is(err, types.ErrAPIRequest))
	})
}
