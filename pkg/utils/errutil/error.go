package errutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// HandleError logs err and reports it to Sentry with the goerr values as
// extras. Without a configured DSN the report is a no-op.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if reqID, ok := logging.LookupRequestID(ctx); ok {
			scope.SetTag("request_id", reqID.String())
		}
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		slog.Any("error", err),
		slog.Any("sentry.EventID", evID),
	)
}
