package testhelper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/repository"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
)

// TestAll runs the conformance suite against any ScanRepository implementation.
func TestAll(t *testing.T, repo interfaces.ScanRepository) {
	t.Run("PutAndGet", func(t *testing.T) {
		TestPutAndGet(t, repo)
	})
	t.Run("Overwrite", func(t *testing.T) {
		TestOverwrite(t, repo)
	})
	t.Run("NotFound", func(t *testing.T) {
		TestNotFound(t, repo)
	})
	t.Run("ListByProject", func(t *testing.T) {
		TestListByProject(t, repo)
	})
}

func newRecord(projectID types.ProjectID, startedAt time.Time) *model.ScanRecord {
	return &model.ScanRecord{
		JobID:      types.NewJobID(),
		ScanID:     types.ScanID("scan-" + uuid.NewString()[:8]),
		ProjectID:  projectID,
		Branch:     "main",
		Repository: "cdscan",
		State:      types.ScanStateCompleted,
		SASTCount:  2,
		IaCCount:   0,
		SCACount:   1,
		StartedAt:  startedAt.UTC().Truncate(time.Millisecond),
		FinishedAt: startedAt.Add(time.Minute).UTC().Truncate(time.Millisecond),
	}
}

func uniqueProject() types.ProjectID {
	return types.ProjectID("project-" + uuid.NewString()[:8])
}

func TestPutAndGet(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()
	record := newRecord(uniqueProject(), time.Now())

	gt.NoError(t, repo.PutScan(ctx, record))

	got := gt.R1(repo.GetScan(ctx, record.JobID)).NoError(t)
	gt.V(t, got.JobID).Equal(record.JobID)
	gt.V(t, got.ScanID).Equal(record.ScanID)
	gt.V(t, got.ProjectID).Equal(record.ProjectID)
	gt.V(t, got.Branch).Equal(record.Branch)
	gt.V(t, got.State).Equal(record.State)
	gt.V(t, got.Total()).Equal(3)
	gt.True(t, got.StartedAt.Equal(record.StartedAt))
}

func TestOverwrite(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()
	record := newRecord(uniqueProject(), time.Now())
	gt.NoError(t, repo.PutScan(ctx, record))

	record.State = types.ScanStateFailed
	record.Error = "scan failed"
	gt.NoError(t, repo.PutScan(ctx, record))

	got := gt.R1(repo.GetScan(ctx, record.JobID)).NoError(t)
	gt.V(t, got.State).Equal(types.ScanStateFailed)
	gt.V(t, got.Error).Equal("scan failed")
}

func TestNotFound(t *testing.T, repo interfaces.ScanRepository) {
	_, err := repo.GetScan(context.Background(), types.NewJobID())
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestListByProject(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()
	projectID := uniqueProject()
	base := time.Now().Add(-time.Hour)

	oldest := newRecord(projectID, base)
	middle := newRecord(projectID, base.Add(10*time.Minute))
	newest := newRecord(projectID, base.Add(20*time.Minute))
	other := newRecord(uniqueProject(), base.Add(30*time.Minute))

	for _, r := range []*model.ScanRecord{middle, oldest, other, newest} {
		gt.NoError(t, repo.PutScan(ctx, r))
	}

	t.Run("newest first", func(t *testing.T) {
		records := gt.R1(repo.ListScans(ctx, projectID, 10)).NoError(t)
		gt.A(t, records).Length(3)
		gt.V(t, records[0].JobID).Equal(newest.JobID)
		gt.V(t, records[1].JobID).Equal(middle.JobID)
		gt.V(t, records[2].JobID).Equal(oldest.JobID)
	})

	t.Run("limit", func(t *testing.T) {
		records := gt.R1(repo.ListScans(ctx, projectID, 2)).NoError(t)
		gt.A(t, records).Length(2)
		gt.V(t, records[0].JobID).Equal(newest.JobID)
	})

	t.Run("unknown project", func(t *testing.T) {
		records := gt.R1(repo.ListScans(ctx, uniqueProject(), 10)).NoError(t)
		gt.A(t, records).Length(0)
	})
}
