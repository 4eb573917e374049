package usecase

import (
	"context"
	"fmt"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// pollScan asks for the scan status until it reaches a terminal state or the
// attempts run out.
func (x *UseCase) pollScan(ctx context.Context, job *model.ScanJob) (types.ScanState, error) {
	cd := x.clients.CybeDefend()

	for attempt := 1; attempt <= x.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", goerr.Wrap(types.ErrScanCancelled, "polling interrupted", goerr.V("attempt", attempt))
		}

		status, err := cd.GetScanStatus(ctx, job.ProjectID, job.ScanID)
		if err != nil {
			return "", goerr.Wrap(err, "failed to get scan status",
				goerr.V("scan_id", job.ScanID),
				goerr.V("attempt", attempt),
			)
		}

		state := types.NormalizeScanState(status.State)
		logging.From(ctx).Debug("scan status",
			"scan_id", job.ScanID,
			"state", state,
			"progress", status.Progress,
			"attempt", attempt,
		)
		x.progress(ctx, fmt.Sprintf("Scan %s (%d%%)", state, status.Progress))

		if state.IsTerminal() {
			return state, nil
		}

		if attempt < x.maxAttempts {
			if err := x.sleep(ctx, x.pollInterval); err != nil {
				return "", goerr.Wrap(types.ErrScanCancelled, "polling interrupted", goerr.V("attempt", attempt))
			}
		}
	}

	return "", goerr.Wrap(types.ErrScanTimeout, "scan did not finish in time",
		goerr.V("scan_id", job.ScanID),
		goerr.V("attempts", x.maxAttempts),
	)
}
