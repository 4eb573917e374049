package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra"
	"github.com/cybedefend/cdscan/pkg/state"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxAttempts  = 60
	DefaultPageSize     = 50
)

// NotifyFunc receives the user-visible outcome of a run.
type NotifyFunc func(ctx context.Context, n model.Notification)

// ProgressFunc receives short progress messages while a run is active.
type ProgressFunc func(ctx context.Context, msg string)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type UseCase struct {
	clients *infra.Clients
	store   *state.Store

	running  atomic.Bool
	activeMu sync.Mutex
	activeID types.JobID
	cancel   context.CancelFunc

	pollInterval time.Duration
	maxAttempts  int
	sleep        SleepFunc
	pageSize     int
	severities   []string
	excludes     []string
	useGitignore bool
	notify       NotifyFunc
	progress     ProgressFunc
}

type Option func(*UseCase)

func WithStore(store *state.Store) Option {
	return func(x *UseCase) {
		x.store = store
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(x *UseCase) {
		x.pollInterval = d
	}
}

func WithMaxAttempts(n int) Option {
	return func(x *UseCase) {
		x.maxAttempts = n
	}
}

func WithSleep(fn SleepFunc) Option {
	return func(x *UseCase) {
		x.sleep = fn
	}
}

func WithPageSize(n int) Option {
	return func(x *UseCase) {
		x.pageSize = n
	}
}

// WithSeverities restricts fetched results to the given severities.
func WithSeverities(severities []string) Option {
	return func(x *UseCase) {
		x.severities = severities
	}
}

// WithExcludes adds directory names left out of the workspace archive.
func WithExcludes(names []string) Option {
	return func(x *UseCase) {
		x.excludes = names
	}
}

// WithGitignore makes the archiver honor .gitignore files of the workspace.
func WithGitignore(enabled bool) Option {
	return func(x *UseCase) {
		x.useGitignore = enabled
	}
}

func WithNotify(fn NotifyFunc) Option {
	return func(x *UseCase) {
		x.notify = fn
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(x *UseCase) {
		x.progress = fn
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:      clients,
		pollInterval: DefaultPollInterval,
		maxAttempts:  DefaultMaxAttempts,
		sleep:        sleepContext,
		pageSize:     DefaultPageSize,
		notify:       logNotification,
		progress:     func(context.Context, string) {},
	}

	for _, opt := range options {
		opt(uc)
	}

	if uc.store == nil {
		uc.store = state.New()
	}

	return uc
}

// Store returns the state store the use case publishes to.
func (x *UseCase) Store() *state.Store {
	return x.store
}

// Snapshot returns a copy of the current scan state.
func (x *UseCase) Snapshot() model.Snapshot {
	return x.store.Snapshot()
}

// ResetState clears published results and errors.
func (x *UseCase) ResetState() {
	x.store.Reset()
}

// ActiveJob returns the ID of the running scan, or "" when idle.
func (x *UseCase) ActiveJob() types.JobID {
	x.activeMu.Lock()
	defer x.activeMu.Unlock()
	return x.activeID
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func logNotification(ctx context.Context, n model.Notification) {
	logger := logging.From(ctx)
	attrs := []any{slog.String("title", n.Title), slog.String("message", n.Message)}

	switch n.Level {
	case model.NotificationError:
		logger.Error("Notification", attrs...)
	case model.NotificationWarning:
		logger.Warn("Notification", attrs...)
	default:
		logger.Info("Notification", attrs...)
	}
}
