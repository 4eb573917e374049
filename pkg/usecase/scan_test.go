package usecase_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/cybedefend/cdscan/pkg/domain/mock"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra"
	"github.com/cybedefend/cdscan/pkg/repository/memory"
	"github.com/cybedefend/cdscan/pkg/state"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/cybedefend/cdscan/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

type fixedBranch struct {
	branch types.BranchName
	ok     bool
}

func (x *fixedBranch) CurrentBranch(ctx context.Context, root string) (types.BranchName, bool) {
	return x.branch, x.ok
}

func (x *fixedBranch) RepositoryName(root string) string {
	return "my-repo"
}

func testBase(id string) *model.VulnerabilityBase {
	return &model.VulnerabilityBase{
		ID:              id,
		CurrentSeverity: "HIGH",
		Vulnerability:   &model.VulnerabilityMetadata{ID: "meta-" + id, Name: id},
	}
}

// newBackend returns a CybeDefend mock answering with the given status
// sequence and 2 SAST, 0 IaC and 1 SCA findings.
func newBackend(t *testing.T, statuses ...string) *mock.CybeDefendMock {
	t.Helper()
	var mutex sync.Mutex
	calls := 0

	return &mock.CybeDefendMock{
		StartScanFunc: func(ctx context.Context, projectID types.ProjectID, branch types.BranchName) (*model.StartScanResponse, error) {
			return &model.StartScanResponse{ScanID: "s1", URL: "https://up"}, nil
		},
		UploadArchiveFunc: func(ctx context.Context, uploadURL string, archivePath string) error {
			_, err := os.Stat(archivePath)
			return err
		},
		GetScanStatusFunc: func(ctx context.Context, projectID types.ProjectID, scanID types.ScanID) (*model.ScanStatusResponse, error) {
			mutex.Lock()
			defer mutex.Unlock()
			state := statuses[len(statuses)-1]
			if calls < len(statuses) {
				state = statuses[calls]
			}
			calls++
			return &model.ScanStatusResponse{ID: scanID, State: state}, nil
		},
		GetSASTResultsFunc: func(ctx context.Context, query *model.ResultsQuery) (*model.SASTPage, error) {
			return &model.SASTPage{
				Vulnerabilities: []model.SASTItem{{Base: testBase("sast-1")}, {Base: testBase("sast-2")}},
				Total:           2,
				ScanProjectInfo: &model.ScanProjectInfo{ScanID: "s1", State: "completed"},
			}, nil
		},
		GetIaCResultsFunc: func(ctx context.Context, query *model.ResultsQuery) (*model.IaCPage, error) {
			return &model.IaCPage{}, nil
		},
		GetSCAResultsFunc: func(ctx context.Context, query *model.ResultsQuery) (*model.SCAPage, error) {
			return &model.SCAPage{
				Vulnerabilities: []model.SCAItem{{Base: &model.VulnerabilityBase{ID: "sca-1", CurrentSeverity: "LOW"}}},
				Total:           1,
			}, nil
		},
	}
}

func newWorkspace(t *testing.T) *model.ScanInput {
	t.Helper()
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"main.go": "package main"})
	return &model.ScanInput{ProjectID: "p1", WorkspaceRoot: root}
}

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

func TestRunScan(t *testing.T) {
	t.Run("full run publishes results", func(t *testing.T) {
		backend := newBackend(t, "QUEUED", "RUNNING", "COMPLETED")
		repo := memory.New()
		var notes []model.Notification
		uc := usecase.New(
			infra.New(
				infra.WithCybeDefend(backend),
				infra.WithBranchDetector(&fixedBranch{branch: "main", ok: true}),
				infra.WithScanRepository(repo),
			),
			usecase.WithSleep(noSleep),
			usecase.WithNotify(func(ctx context.Context, n model.Notification) {
				notes = append(notes, n)
			}),
		)

		ctx := context.Background()
		gt.NoError(t, uc.RunScan(ctx, newWorkspace(t)))

		snap := uc.Store().Snapshot()
		gt.False(t, snap.IsLoading)
		gt.V(t, snap.Error).Equal("")
		gt.V(t, snap.TotalVulnerabilities).Equal(3)
		gt.V(t, snap.LastScanState).Equal(types.ScanStateCompleted)
		gt.V(t, snap.CurrentBranch).Equal(types.BranchName("main"))
		gt.A(t, snap.SAST).Length(2)
		gt.A(t, snap.IaC).Length(0)
		gt.A(t, snap.SCA).Length(1)
		for _, v := range snap.SAST {
			gt.V(t, v.Type).Equal(types.VulnTypeSAST)
		}
		gt.V(t, snap.SCA[0].Type).Equal(types.VulnTypeSCA)

		gt.A(t, backend.GetScanStatusCalls()).Length(3)
		gt.A(t, backend.StartScanCalls()).Length(1)
		gt.V(t, backend.StartScanCalls()[0].Branch).Equal(types.BranchName("main"))
		gt.V(t, backend.GetSASTResultsCalls()[0].Query.Branch).Equal(types.BranchName("main"))

		gt.A(t, notes).Length(1)
		gt.V(t, notes[0].Title).Equal("Scan completed")
		gt.V(t, notes[0].Message).Equal("Found 3 vulnerabilities on branch 'main'")

		records := gt.R1(repo.ListScans(ctx, "p1", 10)).NoError(t)
		gt.A(t, records).Length(1)
		gt.V(t, records[0].State).Equal(types.ScanStateCompleted)
		gt.V(t, records[0].ScanID).Equal(types.ScanID("s1"))
		gt.V(t, records[0].Repository).Equal("my-repo")
		gt.V(t, records[0].Total()).Equal(3)
	})

	t.Run("detached branch is not sent", func(t *testing.T) {
		backend := newBackend(t, "COMPLETED")
		var notes []model.Notification
		uc := usecase.New(
			infra.New(
				infra.WithCybeDefend(backend),
				infra.WithBranchDetector(&fixedBranch{branch: types.DetachedBranch("a1b2c3d4"), ok: true}),
			),
			usecase.WithSleep(noSleep),
			usecase.WithNotify(func(ctx context.Context, n model.Notification) {
				notes = append(notes, n)
			}),
		)

		gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))

		gt.V(t, backend.StartScanCalls()[0].Branch).Equal(types.BranchName(""))
		gt.V(t, backend.GetSASTResultsCalls()[0].Query.Branch).Equal(types.BranchName(""))
		gt.V(t, backend.GetIaCResultsCalls()[0].Query.Branch).Equal(types.BranchName(""))
		gt.V(t, backend.GetSCAResultsCalls()[0].Query.Branch).Equal(types.BranchName(""))
		gt.V(t, uc.Store().Snapshot().CurrentBranch).Equal(types.BranchName(""))
		gt.V(t, notes[0].Message).Equal("Found 3 vulnerabilities")
	})

	t.Run("undetected branch is not sent", func(t *testing.T) {
		backend := newBackend(t, "COMPLETED")
		uc := usecase.New(
			infra.New(
				infra.WithCybeDefend(backend),
				infra.WithBranchDetector(&fixedBranch{ok: false}),
			),
			usecase.WithSleep(noSleep),
		)

		gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))
		gt.V(t, backend.StartScanCalls()[0].Branch).Equal(types.BranchName(""))
	})

	t.Run("failed terminal state is an error", func(t *testing.T) {
		backend := newBackend(t, "RUNNING", "failed")
		var notes []model.Notification
		repo := memory.New()
		uc := usecase.New(
			infra.New(infra.WithCybeDefend(backend), infra.WithScanRepository(repo)),
			usecase.WithSleep(noSleep),
			usecase.WithNotify(func(ctx context.Context, n model.Notification) {
				notes = append(notes, n)
			}),
		)

		err := uc.RunScan(context.Background(), newWorkspace(t))
		gt.True(t, errors.Is(err, types.ErrScanFailed))

		snap := uc.Store().Snapshot()
		gt.False(t, snap.IsLoading)
		gt.S(t, snap.Error).Contains("FAILED")
		gt.V(t, snap.TotalVulnerabilities).Equal(0)
		gt.A(t, backend.GetSASTResultsCalls()).Length(0)

		gt.A(t, notes).Length(1)
		gt.V(t, notes[0].Level).Equal(model.NotificationError)
		gt.V(t, notes[0].Title).Equal("Scan failed")

		records := gt.R1(repo.ListScans(context.Background(), "p1", 10)).NoError(t)
		gt.A(t, records).Length(1)
		gt.V(t, records[0].State).Equal(types.ScanStateFailed)
	})

	t.Run("upload failure aborts before polling", func(t *testing.T) {
		backend := newBackend(t, "COMPLETED")
		backend.UploadArchiveFunc = func(ctx context.Context, uploadURL string, archivePath string) error {
			return types.ErrUploadFailed
		}
		uc := usecase.New(infra.New(infra.WithCybeDefend(backend)), usecase.WithSleep(noSleep))

		err := uc.RunScan(context.Background(), newWorkspace(t))
		gt.True(t, errors.Is(err, types.ErrUploadFailed))
		gt.A(t, backend.GetScanStatusCalls()).Length(0)
		gt.V(t, uc.Store().Error()).Equal(err.Error())
	})

	t.Run("fetch error publishes nothing", func(t *testing.T) {
		backend := newBackend(t, "COMPLETED")
		backend.GetSCAResultsFunc = func(ctx context.Context, query *model.ResultsQuery) (*model.SCAPage, error) {
			return nil, types.ErrAPIRequest
		}
		uc := usecase.New(infra.New(infra.WithCybeDefend(backend)), usecase.WithSleep(noSleep))

		err := uc.RunScan(context.Background(), newWorkspace(t))
		gt.True(t, errors.Is(err, types.ErrAPIRequest))
		snap := uc.Store().Snapshot()
		gt.V(t, snap.TotalVulnerabilities).Equal(0)
		gt.A(t, snap.SAST).Length(0)
		gt.V(t, snap.LastScanState).Equal(types.ScanStateUnknown)
	})

	t.Run("temp archive is removed", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("TMPDIR", tmpDir)

		var uploaded string
		backend := newBackend(t, "COMPLETED")
		backend.UploadArchiveFunc = func(ctx context.Context, uploadURL string, archivePath string) error {
			uploaded = archivePath
			_, err := os.Stat(archivePath)
			return err
		}
		uc := usecase.New(infra.New(infra.WithCybeDefend(backend)), usecase.WithSleep(noSleep))

		gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))
		gt.V(t, uploaded).NotEqual("")
		_, err := os.Stat(uploaded)
		gt.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("invalid input is rejected before the run", func(t *testing.T) {
		uc := usecase.New(infra.New(infra.WithCybeDefend(newBackend(t, "COMPLETED"))))
		err := uc.RunScan(context.Background(), &model.ScanInput{WorkspaceRoot: "."})
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
		gt.False(t, uc.Store().IsLoading())
	})
}

func TestPoll(t *testing.T) {
	t.Run("stops at terminal state", func(t *testing.T) {
		backend := newBackend(t, "RUNNING", "RUNNING", "COMPLETED")
		var sleeps []time.Duration
		uc := usecase.New(
			infra.New(infra.WithCybeDefend(backend)),
			usecase.WithSleep(func(ctx context.Context, d time.Duration) error {
				sleeps = append(sleeps, d)
				return nil
			}),
		)

		gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))
		gt.A(t, backend.GetScanStatusCalls()).Length(3)
		gt.A(t, sleeps).Equal([]time.Duration{5 * time.Second, 5 * time.Second})
		gt.V(t, uc.Store().LastScanState()).Equal(types.ScanStateCompleted)
	})

	t.Run("times out after max attempts", func(t *testing.T) {
		backend := newBackend(t, "RUNNING")
		sleeps := 0
		uc := usecase.New(
			infra.New(infra.WithCybeDefend(backend)),
			usecase.WithSleep(func(ctx context.Context, d time.Duration) error {
				sleeps++
				return nil
			}),
		)

		err := uc.RunScan(context.Background(), newWorkspace(t))
		gt.True(t, errors.Is(err, types.ErrScanTimeout))
		gt.A(t, backend.GetScanStatusCalls()).Length(60)
		gt.V(t, sleeps).Equal(59)
		gt.A(t, backend.GetSASTResultsCalls()).Length(0)
	})

	t.Run("degraded completion is a success", func(t *testing.T) {
		backend := newBackend(t, "completed_degraded")
		backend.GetSASTResultsFunc = func(ctx context.Context, query *model.ResultsQuery) (*model.SASTPage, error) {
			return &model.SASTPage{}, nil
		}
		uc := usecase.New(infra.New(infra.WithCybeDefend(backend)), usecase.WithSleep(noSleep))

		gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))
		// scan info is absent, so the state defaults to COMPLETED
		gt.V(t, uc.Store().LastScanState()).Equal(types.ScanStateCompleted)
		gt.V(t, uc.Store().TotalVulnerabilities()).Equal(1)
	})
}

func TestFetchPagination(t *testing.T) {
	backend := newBackend(t, "COMPLETED")
	backend.GetSASTResultsFunc = func(ctx context.Context, query *model.ResultsQuery) (*model.SASTPage, error) {
		var items []model.SASTItem
		switch query.PageNumber {
		case 1, 2:
			items = []model.SASTItem{{Base: testBase("a")}, {Base: testBase("b")}}
		case 3:
			items = []model.SASTItem{{Base: testBase("c")}}
		}
		return &model.SASTPage{Vulnerabilities: items, Total: 5}, nil
	}
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend)),
		usecase.WithSleep(noSleep),
		usecase.WithPageSize(2),
		usecase.WithSeverities([]string{"HIGH", "CRITICAL"}),
	)

	gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))

	calls := backend.GetSASTResultsCalls()
	gt.A(t, calls).Length(3)
	for i, call := range calls {
		gt.V(t, call.Query.PageNumber).Equal(i + 1)
		gt.V(t, call.Query.PageSize).Equal(2)
		gt.A(t, call.Query.Severities).Equal([]string{"HIGH", "CRITICAL"})
	}
	gt.A(t, uc.Store().SAST()).Length(5)
}

func TestCancelScan(t *testing.T) {
	backend := newBackend(t, "RUNNING")
	polled := make(chan struct{}, 1)
	backend.GetScanStatusFunc = func(ctx context.Context, projectID types.ProjectID, scanID types.ScanID) (*model.ScanStatusResponse, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return &model.ScanStatusResponse{State: "RUNNING"}, nil
	}

	repo := memory.New()
	var mutex sync.Mutex
	var notes []model.Notification
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend), infra.WithScanRepository(repo)),
		usecase.WithPollInterval(time.Hour),
		usecase.WithNotify(func(ctx context.Context, n model.Notification) {
			mutex.Lock()
			defer mutex.Unlock()
			notes = append(notes, n)
		}),
	)

	jobID, done, err := uc.StartScan(context.Background(), newWorkspace(t))
	gt.NoError(t, err)
	gt.V(t, uc.ActiveJob()).Equal(jobID)

	<-polled
	gt.True(t, uc.CancelScan())
	<-done

	snap := uc.Store().Snapshot()
	gt.False(t, snap.IsLoading)
	gt.V(t, snap.Error).Equal("scan cancelled")
	gt.V(t, uc.ActiveJob()).Equal(types.JobID(""))
	gt.False(t, uc.CancelScan())

	mutex.Lock()
	gt.A(t, notes).Length(1)
	gt.V(t, notes[0].Level).Equal(model.NotificationWarning)
	gt.V(t, notes[0].Title).Equal("Scan cancelled")
	mutex.Unlock()

	record := gt.R1(repo.GetScan(context.Background(), jobID)).NoError(t)
	gt.V(t, record.State).Equal(types.ScanStateCancelled)
}

func TestRunScanCallerDeadline(t *testing.T) {
	backend := newBackend(t, "RUNNING")
	repo := memory.New()
	var notes []model.Notification
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend), infra.WithScanRepository(repo)),
		usecase.WithPollInterval(time.Hour),
		usecase.WithNotify(func(ctx context.Context, n model.Notification) {
			notes = append(notes, n)
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := uc.RunScan(ctx, newWorkspace(t))
	gt.Error(t, err)

	snap := uc.Store().Snapshot()
	gt.V(t, snap.Error).NotEqual("scan cancelled")

	gt.A(t, notes).Length(1)
	gt.V(t, notes[0].Level).Equal(model.NotificationError)
	gt.V(t, notes[0].Title).Equal("Scan failed")

	records := gt.R1(repo.ListScans(context.Background(), "p1", 10)).NoError(t)
	gt.A(t, records).Length(1)
	gt.V(t, records[0].State).Equal(types.ScanStateFailed)
}

func TestStartScanRejectsConcurrentRun(t *testing.T) {
	backend := newBackend(t, "COMPLETED")
	release := make(chan struct{})
	backend.StartScanFunc = func(ctx context.Context, projectID types.ProjectID, branch types.BranchName) (*model.StartScanResponse, error) {
		<-release
		return &model.StartScanResponse{ScanID: "s1", URL: "https://up"}, nil
	}

	st := state.New()
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend)),
		usecase.WithStore(st),
		usecase.WithSleep(noSleep),
	)
	input := newWorkspace(t)

	_, done, err := uc.StartScan(context.Background(), input)
	gt.NoError(t, err)
	gt.True(t, st.IsLoading())

	_, _, err = uc.StartScan(context.Background(), input)
	gt.True(t, errors.Is(err, types.ErrScanInProgress))
	gt.True(t, errors.Is(uc.RunScan(context.Background(), input), types.ErrScanInProgress))

	close(release)
	<-done
	gt.False(t, st.IsLoading())
	gt.V(t, st.TotalVulnerabilities()).Equal(3)

	// a new run is accepted once the previous one has finished
	_, done, err = uc.StartScan(context.Background(), input)
	gt.NoError(t, err)
	<-done
	gt.A(t, backend.StartScanCalls()).Length(2)
}

func TestRunScanKeepsArchive(t *testing.T) {
	backend := newBackend(t, "COMPLETED")
	var stored []string
	store := &mock.ArchiveStoreMock{
		PutFunc: func(ctx context.Context, name string, archivePath string) error {
			_, err := os.Stat(archivePath)
			gt.NoError(t, err)
			stored = append(stored, name)
			return nil
		},
	}
	repo := memory.New()
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend), infra.WithArchiveStore(store), infra.WithScanRepository(repo)),
		usecase.WithSleep(noSleep),
	)

	gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))

	records := gt.R1(repo.ListScans(context.Background(), "p1", 1)).NoError(t)
	gt.A(t, stored).Equal([]string{"p1/" + records[0].JobID.String() + ".zip"})
}

func TestRunScanArchiveStoreFailureIsIgnored(t *testing.T) {
	backend := newBackend(t, "COMPLETED")
	store := &mock.ArchiveStoreMock{
		PutFunc: func(ctx context.Context, name string, archivePath string) error {
			return errors.New("bucket unavailable")
		},
	}
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend), infra.WithArchiveStore(store)),
		usecase.WithSleep(noSleep),
	)

	gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))
	gt.V(t, uc.Store().TotalVulnerabilities()).Equal(3)
}

func TestRunScanExport(t *testing.T) {
	backend := newBackend(t, "COMPLETED")
	var inserted any
	bq := &mock.BigQueryMock{
		GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return nil, nil
		},
		CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
			return nil
		},
		InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
			inserted = data
			return nil
		},
	}
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend), infra.WithBigQuery(bq)),
		usecase.WithSleep(noSleep),
	)

	gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))

	gt.A(t, bq.CreateTableCalls()).Length(1)
	raw, ok := inserted.(*model.ScanExportRawRecord)
	gt.True(t, ok)
	gt.V(t, raw.ProjectID).Equal(types.ProjectID("p1"))
	gt.V(t, raw.ScanID).Equal(types.ScanID("s1"))
	gt.A(t, raw.Findings).Length(3)
	gt.True(t, raw.StartedAt > 0)
}

func TestRunScanExportFailureIsIgnored(t *testing.T) {
	backend := newBackend(t, "COMPLETED")
	bq := &mock.BigQueryMock{
		GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
			return nil, errors.New("permission denied")
		},
	}
	uc := usecase.New(
		infra.New(infra.WithCybeDefend(backend), infra.WithBigQuery(bq)),
		usecase.WithSleep(noSleep),
	)

	gt.NoError(t, uc.RunScan(context.Background(), newWorkspace(t)))
	gt.V(t, uc.Store().TotalVulnerabilities()).Equal(3)
	gt.A(t, bq.InsertCalls()).Length(0)
}

func TestSleepContext(t *testing.T) {
	gt.NoError(t, usecase.SleepContextForTest(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := usecase.SleepContextForTest(ctx, time.Hour)
	gt.True(t, errors.Is(err, context.Canceled))
}
