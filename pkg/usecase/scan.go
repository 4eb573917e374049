package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/errutil"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/cybedefend/cdscan/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const cancelledMessage = "scan cancelled"

// StartScan runs one scan in the background and returns immediately. The run
// stops when ctx is cancelled, so request handlers pass a detached context.
// The returned channel is closed when the run has finished and the store
// holds its outcome. Only one scan runs at a time.
func (x *UseCase) StartScan(ctx context.Context, input *model.ScanInput) (types.JobID, <-chan struct{}, error) {
	if err := input.Validate(); err != nil {
		return "", nil, err
	}
	if !x.running.CompareAndSwap(false, true) {
		return "", nil, goerr.Wrap(types.ErrScanInProgress, "refused to start scan", goerr.V("active_job", x.ActiveJob()))
	}

	jobID := types.NewJobID()
	runCtx, cancel := context.WithCancel(ctx)
	x.setActive(jobID, cancel)
	x.store.SetLoading(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer x.release(cancel)

		// the outcome is already published to the store and notifier
		_ = x.runScan(runCtx, jobID, input)
	}()

	return jobID, done, nil
}

// RunScan runs one scan and blocks until it has finished.
func (x *UseCase) RunScan(ctx context.Context, input *model.ScanInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if !x.running.CompareAndSwap(false, true) {
		return goerr.Wrap(types.ErrScanInProgress, "refused to start scan", goerr.V("active_job", x.ActiveJob()))
	}

	jobID := types.NewJobID()
	runCtx, cancel := context.WithCancel(ctx)
	x.setActive(jobID, cancel)
	defer x.release(cancel)

	return x.runScan(runCtx, jobID, input)
}

// CancelScan asks the active scan to stop. It reports whether a scan was
// running.
func (x *UseCase) CancelScan() bool {
	x.activeMu.Lock()
	defer x.activeMu.Unlock()

	if x.cancel == nil {
		return false
	}
	x.cancel()
	return true
}

func (x *UseCase) setActive(jobID types.JobID, cancel context.CancelFunc) {
	x.activeMu.Lock()
	defer x.activeMu.Unlock()
	x.activeID = jobID
	x.cancel = cancel
}

func (x *UseCase) release(cancel context.CancelFunc) {
	x.activeMu.Lock()
	x.activeID = ""
	x.cancel = nil
	x.activeMu.Unlock()

	cancel()
	x.running.Store(false)
}

func (x *UseCase) runScan(ctx context.Context, jobID types.JobID, input *model.ScanInput) error {
	logger := logging.From(ctx).With("job_id", jobID, "project_id", input.ProjectID)
	ctx = logging.With(ctx, logger)

	record := &model.ScanRecord{
		JobID:     jobID,
		ProjectID: input.ProjectID,
		State:     types.ScanStateQueued,
		StartedAt: logging.CtxTime(ctx).UTC(),
	}

	x.store.SetLoading(true)
	logger.Info("scan started", "workspace", input.WorkspaceRoot)

	results, err := x.execute(ctx, record, input)
	record.FinishedAt = logging.CtxTime(ctx).UTC()

	if err != nil {
		x.fail(ctx, record, err)
		x.saveRecord(ctx, record)
		return err
	}

	x.store.UpdateResults(results)

	record.State = results.ScanState
	record.SASTCount = len(results.SAST)
	record.IaCCount = len(results.IaC)
	record.SCACount = len(results.SCA)

	message := fmt.Sprintf("Found %d vulnerabilities", results.Total())
	if branch := results.Branch.ForRequest(); branch != "" {
		message += fmt.Sprintf(" on branch '%s'", branch)
	}
	x.notify(ctx, model.Notification{
		Level:   model.NotificationInfo,
		Title:   "Scan completed",
		Message: message,
	})
	logger.Info("scan finished", "state", results.ScanState, "total", results.Total())

	x.saveRecord(ctx, record)
	if err := x.exportResults(ctx, record, results); err != nil {
		errutil.HandleError(ctx, "failed to export scan results", err)
	}

	return nil
}

// execute runs every phase of a scan up to the fetched results. Nothing is
// published to the store here.
func (x *UseCase) execute(ctx context.Context, record *model.ScanRecord, input *model.ScanInput) (*model.Results, error) {
	cd := x.clients.CybeDefend()
	if cd == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "CybeDefend client is not configured")
	}

	// 1. branch detection never aborts the run
	x.progress(ctx, "Detecting branch...")
	var branch types.BranchName
	if detector := x.clients.BranchDetector(); detector != nil {
		if b, ok := detector.CurrentBranch(ctx, input.WorkspaceRoot); ok {
			branch = b
		}
		record.Repository = detector.RepositoryName(input.WorkspaceRoot)
	}
	record.Branch = branch
	logging.From(ctx).Debug("branch detected", "branch", branch, "repository", record.Repository)

	// 2. archive
	x.progress(ctx, "Archiving project...")
	archivePath, err := createWorkspaceArchive(ctx, input.WorkspaceRoot, archiveOptions{
		excludes:     x.excludes,
		useGitignore: x.useGitignore,
	})
	if err != nil {
		return nil, err
	}
	defer safe.Remove(archivePath)

	// 3. initiate
	x.progress(ctx, "Initiating scan...")
	resp, err := cd.StartScan(ctx, input.ProjectID, branch.ForRequest())
	if err != nil {
		return nil, err
	}
	job := &model.ScanJob{
		JobID:     record.JobID,
		ScanID:    resp.ScanID,
		ProjectID: input.ProjectID,
		Branch:    branch,
		UploadURL: resp.URL,
	}
	record.ScanID = job.ScanID

	// 4. upload
	x.progress(ctx, "Uploading archive...")
	if err := cd.UploadArchive(ctx, job.UploadURL, archivePath); err != nil {
		return nil, err
	}
	x.keepArchive(ctx, job, archivePath)

	// 5. poll
	x.progress(ctx, "Waiting for scan to complete...")
	state, err := x.pollScan(ctx, job)
	if err != nil {
		return nil, err
	}
	record.State = state

	// 6. evaluate
	if !state.IsSuccess() {
		return nil, goerr.Wrap(types.ErrScanFailed, "Final status: "+state.String(),
			goerr.V("state", state),
			goerr.V("scan_id", job.ScanID),
		)
	}

	// 7. fetch
	return x.fetchResults(ctx, input.ProjectID, branch)
}

// keepArchive copies the uploaded archive to the archive store, if any.
func (x *UseCase) keepArchive(ctx context.Context, job *model.ScanJob, archivePath string) {
	store := x.clients.ArchiveStore()
	if store == nil {
		return
	}

	name := path.Join(job.ProjectID.String(), job.JobID.String()+".zip")
	if err := store.Put(ctx, name, archivePath); err != nil {
		errutil.HandleError(ctx, "failed to keep scan archive", err)
	}
}

func (x *UseCase) fail(ctx context.Context, record *model.ScanRecord, err error) {
	if isCancelled(ctx, err) {
		record.State = types.ScanStateCancelled
		record.Error = cancelledMessage

		x.store.SetError(cancelledMessage)
		x.notify(ctx, model.Notification{
			Level:   model.NotificationWarning,
			Title:   "Scan cancelled",
			Message: "The scan was stopped before completion",
		})
		logging.From(ctx).Info("scan cancelled")
		return
	}

	record.State = types.ScanStateFailed
	record.Error = err.Error()

	x.store.SetError(err.Error())
	x.notify(ctx, model.Notification{
		Level:   model.NotificationError,
		Title:   "Scan failed",
		Message: err.Error(),
	})
	errutil.HandleError(ctx, "scan failed", err)
}

// isCancelled reports an explicit stop. A caller deadline counts as a
// failure.
func isCancelled(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, types.ErrScanCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(ctx.Err(), context.Canceled)
}

func (x *UseCase) saveRecord(ctx context.Context, record *model.ScanRecord) {
	repo := x.clients.ScanRepository()
	if repo == nil {
		return
	}
	// the run context may already be cancelled
	if err := repo.PutScan(context.WithoutCancel(ctx), record); err != nil {
		errutil.HandleError(ctx, "failed to save scan record", err)
	}
}
