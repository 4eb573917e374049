package server

import (
	"context"

	"github.com/cybedefend/cdscan/pkg/utils/logging"
)

// DetachContext returns a background context carrying the logger, request ID
// and clock of ctx. Scans outlive the request that started them.
func DetachContext(ctx context.Context) context.Context {
	bgCtx := logging.With(context.Background(), logging.From(ctx))
	return logging.InheritContextValues(bgCtx, ctx)
}
